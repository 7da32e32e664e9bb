package bsc

import (
	"context"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/linearblock"
	mat "github.com/nathanhack/sparsemat"
)

// RunBSC runs trials of a binary symmetric channel simulation against
// the code l at the given crossover probability: random messages are
// encoded, each codeword bit is flipped independently with probability
// crossoverProbability, and correctionAlg repairs the result.
func RunBSC(ctx context.Context,
	l *linearblock.LinearBlock,
	crossoverProbability float64, trials, threads int,
	correctionAlg benchmarking.BinarySymmetricChannelCorrection,
	previousStats benchmarking.Stats,
	checkpoints benchmarking.Checkpoints,
	showProgress bool) benchmarking.Stats {

	createMessage := func(trial int) mat.SparseVector {
		return benchmarking.RandomMessage(l.MessageLength())
	}

	encode := func(message mat.SparseVector) (codeword mat.SparseVector) {
		return l.Encode(message)
	}

	channel := func(originalCodeword mat.SparseVector) (erroredCodeword mat.SparseVector) {
		return benchmarking.RandomCrossover(originalCodeword, crossoverProbability)
	}

	metrics := func(originalMessage, originalCodeword, fixedChannelInducedCodeword mat.SparseVector) (percentFixedCodewordErrors, percentFixedMessageErrors, percentFixedParityErrors float64) {
		codewordErrors := originalCodeword.HammingDistance(fixedChannelInducedCodeword)
		message := l.Decode(fixedChannelInducedCodeword)
		messageErrors := message.HammingDistance(originalMessage)
		parityErrors := codewordErrors - messageErrors

		percentFixedCodewordErrors = float64(codewordErrors) / float64(l.CodewordLength())
		percentFixedMessageErrors = float64(messageErrors) / float64(l.MessageLength())
		percentFixedParityErrors = float64(parityErrors) / float64(l.ParitySymbols())
		return
	}

	return benchmarking.BenchmarkBSCContinueStats(ctx, trials, threads, createMessage, encode, channel, correctionAlg, metrics, checkpoints, previousStats, showProgress)
}
