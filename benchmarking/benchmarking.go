package benchmarking

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/avgstd"
	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
)

// Stats accumulates the outcomes of BSC channel simulation trials: the
// residual bit error rates after correction, plus how hard the decoder
// worked (iterations) and how often it reached a valid codeword
// (convergence, 1 per converged trial, 0 otherwise).
type Stats struct {
	ChannelCodewordError avgstd.AvgStd // probability of a codeword bit error after correction
	ChannelMessageError  avgstd.AvgStd // probability of a message bit error after correction
	ChannelParityError   avgstd.AvgStd // probability of a parity bit error after correction
	DecodeIterations     avgstd.AvgStd // iterations the decoder used per trial
	Convergence          avgstd.AvgStd // fraction of trials that converged to a valid codeword
}

func (s Stats) String() string {
	return fmt.Sprintf("{Codeword:%0.02f(+/-%0.02f), Message:%0.02f(+/-%0.02f), Parity:%0.02f(+/-%0.02f), Iters:%0.02f(+/-%0.02f), Converged:%0.02f}",
		s.ChannelCodewordError.Mean, math.Sqrt(s.ChannelCodewordError.SampledVariance()),
		s.ChannelMessageError.Mean, math.Sqrt(s.ChannelMessageError.SampledVariance()),
		s.ChannelParityError.Mean, math.Sqrt(s.ChannelParityError.SampledVariance()),
		s.DecodeIterations.Mean, math.Sqrt(s.DecodeIterations.SampledVariance()),
		s.Convergence.Mean,
	)
}

// Checkpoints is called (under lock) after every trial with the updated
// running stats, typically to persist partial results.
type Checkpoints func(updatedStats Stats)

type BinaryMessageConstructor func(trial int) (message mat.SparseVector)
type BinarySymmetricChannelEncoder func(message mat.SparseVector) (codeword mat.SparseVector)
type BinarySymmetricChannel func(codeword mat.SparseVector) (channelInducedCodeword mat.SparseVector)

// BinarySymmetricChannelCorrection repairs a channel damaged codeword and
// reports the decoder effort. converged == false marks an unreliable fix.
type BinarySymmetricChannelCorrection func(channelInducedCodeword mat.SparseVector) (fixedChannelInducedCodeword mat.SparseVector, iterations int, converged bool)

type BinarySymmetricChannelMetrics func(originalMessage, originalCodeword, fixedChannelInducedCodeword mat.SparseVector) (percentFixedCodewordErrors, percentFixedMessageErrors, percentFixedParityErrors float64)

// BenchmarkBSC runs trials of message->encode->channel->correct->metrics
// across threads and returns the accumulated stats.
func BenchmarkBSC(ctx context.Context,
	trials int, threads int,
	createMessage BinaryMessageConstructor,
	encode BinarySymmetricChannelEncoder,
	channel BinarySymmetricChannel,
	codewordRepair BinarySymmetricChannelCorrection,
	metrics BinarySymmetricChannelMetrics,
	checkpoints Checkpoints,
	showProgress bool) Stats {
	return BenchmarkBSCContinueStats(ctx, trials, threads, createMessage, encode, channel, codewordRepair, metrics, checkpoints, Stats{}, showProgress)
}

// BenchmarkBSCContinueStats is BenchmarkBSC picking up from previously
// accumulated stats; only the remaining trials are run.
func BenchmarkBSCContinueStats(ctx context.Context,
	trials int, threads int,
	createMessage BinaryMessageConstructor,
	encode BinarySymmetricChannelEncoder,
	channel BinarySymmetricChannel,
	codewordRepair BinarySymmetricChannelCorrection,
	metrics BinarySymmetricChannelMetrics,
	checkpoints Checkpoints,
	previousStats Stats,
	showProgress bool) Stats {
	trialsToRun := trials - previousStats.ChannelCodewordError.Count
	if trialsToRun <= 0 {
		return previousStats
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(trialsToRun)
	}

	pool := threadpool.NewFixedSize(ctx, threads, trialsToRun)
	statsMux := sync.Mutex{}

	trial := func(i int) {
		if showProgress {
			bar.Increment()
		}
		// a message for this trial
		message := createMessage(i)

		// encode to get the codeword
		codeword := encode(message)

		// send it through the channel to pick up errors
		channelInducedCodeword := channel(codeword)

		// repair the codeword (if possible)
		repaired, iterations, converged := codewordRepair(channelInducedCodeword)

		percentFixedCodewordErrors, percentFixedMessageErrors, percentFixedParityErrors := metrics(message, codeword, repaired)

		convergence := 0.0
		if converged {
			convergence = 1
		}

		statsMux.Lock()
		previousStats.ChannelCodewordError.Update(percentFixedCodewordErrors)
		previousStats.ChannelMessageError.Update(percentFixedMessageErrors)
		previousStats.ChannelParityError.Update(percentFixedParityErrors)
		previousStats.DecodeIterations.Update(float64(iterations))
		previousStats.Convergence.Update(convergence)
		if checkpoints != nil {
			checkpoints(previousStats)
		}
		statsMux.Unlock()
	}

	for i := previousStats.ChannelCodewordError.Count; i < trials; i++ {
		tmp := i
		pool.Add(func() { trial(tmp) })
	}
	pool.Wait()
	if showProgress {
		bar.Finish()
	}
	return previousStats
}
