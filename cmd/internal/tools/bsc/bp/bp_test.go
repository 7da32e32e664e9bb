package bp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock/hamming"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/beliefprop"
)

func TestRunSimulation_TrialCount(t *testing.T) {
	ecc, err := hamming.New(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	// 13 is not a multiple of the per pass batch (threads*10) so the
	// sweep must top up to the exact requested count on its last pass
	Trials = 13
	ErrorProbability = []float64{0.05}
	Threads = 1
	MaxIter = 50
	RuleName = "sum-product"
	TieBreakOne = false

	data := &tools.SimulationStats{
		TypeInfo: typeInfo(beliefprop.SumProduct),
		ECCInfo:  tools.Md5Sum(ecc.H),
		Stats:    make(map[float64]benchmarking.Stats),
	}

	runSimulation(context.Background(), data, ecc, beliefprop.SumProduct, filepath.Join(t.TempDir(), "results.json"))

	stats := data.Stats[0.05]
	if stats.ChannelCodewordError.Count != 13 {
		t.Fatalf("expected 13 trials but found %v", stats.ChannelCodewordError.Count)
	}
}
