package bp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"runtime"
	"sync"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/cmd/internal/tools/bsc"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/beliefprop"
	mat "github.com/nathanhack/sparsemat"
	"github.com/spf13/cobra"
)

var (
	Trials           uint
	ErrorProbability []float64
	Threads          uint
	MaxIter          uint
	RuleName         string
	TieBreakOne      bool
)

var BpRun = func(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		fmt.Println("requires both ECC_JSON_FILE RESULT_JSON")
		return
	}

	rule, err := beliefprop.ParseRule(RuleName)
	if err != nil {
		fmt.Println(err)
		return
	}

	//first get the ECC to use
	ecc, err := tools.LoadLinearBlockECC(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}

	//next load the RESULT_JSON if it exists and validate it matches this run
	data, err := tools.LoadResults(args[1])
	if err != nil {
		fmt.Println(err)
		return
	}

	if data == nil {
		data = &tools.SimulationStats{
			TypeInfo: typeInfo(rule),
			ECCInfo:  tools.Md5Sum(ecc.H),
			Stats:    make(map[float64]benchmarking.Stats),
		}
	}

	if data.TypeInfo != typeInfo(rule) {
		fmt.Printf("results loaded do not match, expected %v but found %v\n", typeInfo(rule), data.TypeInfo)
		return
	}
	if data.ECCInfo != tools.Md5Sum(ecc.H) {
		fmt.Printf("results loaded do not match the ECC\n")
		return
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()

	runSimulation(ctx, data, ecc, rule, args[1])

	err = tools.SaveResults(args[1], data)
	if err != nil {
		fmt.Println(err)
	}
}

func typeInfo(rule beliefprop.Rule) string {
	t := reflect.TypeOf(beliefprop.Config{})
	return fmt.Sprintf("BSC:%v(%v)", t.PkgPath(), rule)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func runSimulation(ctx context.Context, data *tools.SimulationStats, ecc *linearblock.LinearBlock, rule beliefprop.Rule, outputFilename string) {
	checkpointMux := sync.Mutex{}
	checkpointCount := 0

	graph, err := beliefprop.NewGraph(ecc.H)
	if err != nil {
		fmt.Println(err)
		return
	}

	numberOfThreads := int(Threads)
	if numberOfThreads == 0 {
		numberOfThreads = runtime.NumCPU()
	}

	trialsPerIter := numberOfThreads * 10
	bar := pb.StartNew(int(Trials) * len(ErrorProbability))
trialLoops:
	for t := 0; t < int(Trials); t += trialsPerIter {
		select {
		case <-ctx.Done():
			break trialLoops
		default:
		}

		// each pass raises every probability's trial count to target so
		// partial results cover the whole sweep evenly
		target := min(t+trialsPerIter, int(Trials))

		for _, p := range ErrorProbability {
			cfg := beliefprop.Config{
				MaxIterations: int(MaxIter),
				Rule:          rule,
				TieBreakOne:   TieBreakOne,
				Threads:       1, // trials already saturate the threads
			}
			correctionAlg := func(channelInducedCodeword mat.SparseVector) (fixed mat.SparseVector, iterations int, converged bool) {
				result, err := beliefprop.DecodeGraph(ctx, graph, channelInducedCodeword, p, cfg)
				if err != nil {
					// config and inputs were validated up front
					return channelInducedCodeword, 0, false
				}
				return result.Decoded, result.Iterations, result.Converged
			}

			checkpoint := func(stats benchmarking.Stats) {
				checkpointMux.Lock()
				defer checkpointMux.Unlock()

				data.Stats[p] = stats

				if checkpointCount%trialsPerIter == 0 {
					err := tools.SaveResults(outputFilename, data)
					if err != nil {
						fmt.Println(err)
					}
				}
				checkpointCount++
			}
			data.Stats[p] = bsc.RunBSC(ctx, ecc, p, target, numberOfThreads, correctionAlg, data.Stats[p], checkpoint, false)
			bar.Add(target - t)
		}
	}
	bar.Finish()
}
