package benchmarking

import (
	"context"
	"testing"

	"github.com/nathanhack/ldpc/linearblock/hamming"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/beliefprop"
	mat "github.com/nathanhack/sparsemat"
)

func TestBenchmarkBSC(t *testing.T) {
	linearBlock, err := hamming.New(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	graph, err := beliefprop.NewGraph(linearBlock.H)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	createMessage := func(trial int) mat.SparseVector {
		x := trial % 16
		message := mat.CSRVec(4)
		for i := 0; i < 4; i++ {
			message.Set(i, (x&(1<<i))>>i)
		}
		return message
	}

	encode := func(message mat.SparseVector) (codeword mat.SparseVector) {
		return linearBlock.Encode(message)
	}

	channel := func(originalCodeword mat.SparseVector) (erroredCodeword mat.SparseVector) {
		// flip exactly the first bit: belief propagation repairs that
		// column on this code for every codeword (BSC symmetry), while a
		// random column could land on one the girth 4 graph miscorrects
		erroredCodeword = mat.CSRVecCopy(originalCodeword)
		erroredCodeword.Set(0, originalCodeword.At(0)+1)
		return erroredCodeword
	}

	repair := func(channelInducedCodeword mat.SparseVector) (fixed mat.SparseVector, iterations int, converged bool) {
		result, err := beliefprop.DecodeGraph(context.Background(), graph, channelInducedCodeword, 0.05, beliefprop.Config{
			MaxIterations: 50,
			Rule:          beliefprop.SumProduct,
		})
		if err != nil {
			t.Errorf("expected no error but found: %v", err)
			return channelInducedCodeword, 0, false
		}
		return result.Decoded, result.Iterations, result.Converged
	}

	metrics := func(originalMessage, originalCodeword, fixedChannelInducedCodeword mat.SparseVector) (percentFixedCodewordErrors, percentFixedMessageErrors, percentFixedParityErrors float64) {
		codewordErrors := originalCodeword.HammingDistance(fixedChannelInducedCodeword)
		message := linearBlock.Decode(fixedChannelInducedCodeword)
		messageErrors := message.HammingDistance(originalMessage)
		parityErrors := codewordErrors - messageErrors

		percentFixedCodewordErrors = float64(codewordErrors) / float64(linearBlock.CodewordLength())
		percentFixedMessageErrors = float64(messageErrors) / float64(linearBlock.MessageLength())
		percentFixedParityErrors = float64(parityErrors) / float64(linearBlock.ParitySymbols())
		return
	}

	stats := BenchmarkBSC(context.Background(), 16, 1, createMessage, encode, channel, repair, metrics, nil, false)

	if stats.ChannelCodewordError.Count != 16 {
		t.Fatalf("expected 16 trials but found %v", stats.ChannelCodewordError.Count)
	}
	if stats.ChannelCodewordError.Mean != 0 {
		t.Fatalf("expected all single bit errors fixed but found codeword error mean %v", stats.ChannelCodewordError.Mean)
	}
	if stats.Convergence.Mean != 1 {
		t.Fatalf("expected every trial to converge but found %v", stats.Convergence.Mean)
	}
	if stats.DecodeIterations.Mean < 1 {
		t.Fatalf("expected at least one iteration per trial but found %v", stats.DecodeIterations.Mean)
	}
}

func TestBenchmarkBSCContinueStats(t *testing.T) {
	createMessage := func(trial int) mat.SparseVector { return mat.CSRVec(2) }
	encode := func(message mat.SparseVector) mat.SparseVector { return message }
	channel := func(codeword mat.SparseVector) mat.SparseVector { return codeword }
	repair := func(codeword mat.SparseVector) (mat.SparseVector, int, bool) { return codeword, 1, true }
	metrics := func(originalMessage, originalCodeword, fixed mat.SparseVector) (float64, float64, float64) {
		return 0, 0, 0
	}

	first := BenchmarkBSC(context.Background(), 5, 1, createMessage, encode, channel, repair, metrics, nil, false)
	second := BenchmarkBSCContinueStats(context.Background(), 8, 1, createMessage, encode, channel, repair, metrics, nil, first, false)

	if second.ChannelCodewordError.Count != 8 {
		t.Fatalf("expected 8 total trials but found %v", second.ChannelCodewordError.Count)
	}

	// already at the trial count, nothing more should run
	third := BenchmarkBSCContinueStats(context.Background(), 8, 1, createMessage, encode, channel, repair, metrics, nil, second, false)
	if third.ChannelCodewordError.Count != 8 {
		t.Fatalf("expected 8 total trials but found %v", third.ChannelCodewordError.Count)
	}
}
