package beliefprop

import (
	"context"
	"fmt"
	"math"

	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
	mat2 "gonum.org/v1/gonum/mat"
)

// Rule selects the check node update used during message passing.
type Rule int

const (
	// SumProduct is the exact tanh product rule in the LLR domain.
	SumProduct Rule = iota + 1
	// MinSum approximates SumProduct with a sign product and a minimum
	// magnitude, cheaper per edge but slightly weaker.
	MinSum
)

func (r Rule) String() string {
	switch r {
	case SumProduct:
		return "sum-product"
	case MinSum:
		return "min-sum"
	}
	return fmt.Sprintf("Rule(%v)", int(r))
}

// ParseRule converts a rule name ("sum-product" or "min-sum") into a Rule.
func ParseRule(name string) (Rule, error) {
	switch name {
	case "sum-product", "sumproduct", "sp":
		return SumProduct, nil
	case "min-sum", "minsum", "ms":
		return MinSum, nil
	}
	return 0, fmt.Errorf("unknown rule %q (expected sum-product or min-sum)", name)
}

// atanhEpsilon bounds the atanh argument away from +/-1 so a saturated
// message never produces an infinite LLR.
const atanhEpsilon = 1e-10

// Config holds the caller supplied decoding options. There are no
// defaults for MaxIterations or Rule, the zero value is rejected.
type Config struct {
	MaxIterations int  // cap on synchronous rounds, must be >0
	Rule          Rule // SumProduct or MinSum
	TieBreakOne   bool // decode a belief of exactly 0 as a 1 instead of a 0
	Threads       int  // workers per update phase, <=0 uses runtime.NumCPU()
}

func (cfg Config) validate() error {
	if cfg.MaxIterations <= 0 {
		return fmt.Errorf("MaxIterations must be >0 but found %v", cfg.MaxIterations)
	}
	switch cfg.Rule {
	case SumProduct, MinSum:
	default:
		return fmt.Errorf("Rule must be SumProduct or MinSum but found %v", cfg.Rule)
	}
	return nil
}

// Result is the outcome of a decode. When Converged is false the decoder
// ran out of iterations (or was cancelled) before satisfying every check:
// Decoded is then a best effort estimate and must be treated as
// unreliable.
type Result struct {
	Decoded    mat.SparseVector
	Beliefs    []float64
	Converged  bool
	Iterations int
}

// ChannelLLRs computes the intrinsic BSC log likelihood ratio for each
// received bit: log((1-p)/p) for a 0, the negation for a 1. Positive
// favors bit 0. Returns a DomainError unless 0 < p < 1 (p == 0.5 is
// legal and yields all-zero LLRs).
func ChannelLLRs(received mat.SparseVector, crossoverProbability float64) ([]float64, error) {
	if crossoverProbability <= 0 || crossoverProbability >= 1 {
		return nil, DomainError{CrossoverProbability: crossoverProbability}
	}

	llr := math.Log((1 - crossoverProbability) / crossoverProbability)
	result := make([]float64, received.Len())
	for i := 0; i < received.Len(); i++ {
		if received.At(i) == 0 {
			result[i] = llr
		} else {
			result[i] = -llr
		}
	}
	return result, nil
}

// Decode runs loopy belief propagation over the Tanner graph of H to
// recover the codeword closest to the received vector. See DecodeGraph.
func Decode(ctx context.Context, H mat.SparseMat, received mat.SparseVector, crossoverProbability float64, cfg Config) (Result, error) {
	graph, err := NewGraph(H)
	if err != nil {
		return Result{}, err
	}
	return DecodeGraph(ctx, graph, received, crossoverProbability, cfg)
}

// DecodeGraph is Decode for a prebuilt graph, letting callers amortize
// graph construction across many codewords.
//
// Messages follow a synchronous (flooding) schedule: every check node
// update of a round reads only the variable messages of the previous
// round, and every variable node update reads only the check messages
// just produced. The two directional buffers plus a barrier between the
// phases make that safe without locking; node updates within a phase are
// independent and run on a thread pool. After each round the beliefs are
// hard decided and the syndrome tested, a zero syndrome ends the loop
// early. Exhausting MaxIterations, or ctx expiring between rounds, is not
// an error: the Result reports Converged == false.
func DecodeGraph(ctx context.Context, graph *Graph, received mat.SparseVector, crossoverProbability float64, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	if received == nil {
		return Result{}, DimensionMismatchError{Expected: graph.Variables(), Found: 0}
	}
	if received.Len() != graph.Variables() {
		return Result{}, DimensionMismatchError{Expected: graph.Variables(), Found: received.Len()}
	}

	channel, err := ChannelLLRs(received, crossoverProbability)
	if err != nil {
		return Result{}, err
	}

	checks := graph.Checks()
	vars := graph.Variables()

	// Per edge message buffers, kept dense and indexed (check, variable).
	// Entries off the edge set are never read.
	varToCheck := mat2.NewDense(checks, vars, nil)
	checkToVar := mat2.NewDense(checks, vars, nil)
	for v := 0; v < vars; v++ {
		for _, c := range graph.VarChecks(v) {
			varToCheck.Set(c, v, channel[v])
		}
	}

	beliefs := make([]float64, vars)
	copy(beliefs, channel)

	iterations := 0
	converged := false
	decoded := HardDecisions(beliefs, cfg.TieBreakOne)

	for iterations < cfg.MaxIterations && !converged {
		select {
		case <-ctx.Done():
			logrus.Debugf("belief propagation cancelled after %v iterations", iterations)
			return Result{Decoded: decoded, Beliefs: beliefs, Converged: false, Iterations: iterations}, nil
		default:
		}

		updateChecks(ctx, graph, cfg.Rule, varToCheck, checkToVar, cfg.Threads)
		updateVariables(ctx, graph, channel, checkToVar, varToCheck, beliefs, cfg.Threads)
		iterations++

		decoded = HardDecisions(beliefs, cfg.TieBreakOne)
		converged = CheckSyndrome(graph.H, decoded)
	}

	if converged {
		logrus.Debugf("belief propagation converged after %v iterations", iterations)
	} else {
		logrus.Debugf("belief propagation failed to converge within %v iterations", cfg.MaxIterations)
	}

	return Result{Decoded: decoded, Beliefs: beliefs, Converged: converged, Iterations: iterations}, nil
}

// updateChecks computes the extrinsic check to variable messages for one
// round: the message to variable i uses every incident variable message
// except i's own. Both rules do the exclusion in O(degree) from totals
// rather than recomputing a product/minimum per edge.
func updateChecks(ctx context.Context, graph *Graph, rule Rule, varToCheck, checkToVar *mat2.Dense, threads int) {
	checks := graph.Checks()
	pool := threadpool.NewFixedSize(ctx, threads, checks)
	for c := 0; c < checks; c++ {
		check := c
		switch rule {
		case MinSum:
			pool.Add(func() { updateCheckMinSum(graph, check, varToCheck, checkToVar) })
		default:
			pool.Add(func() { updateCheckSumProduct(graph, check, varToCheck, checkToVar) })
		}
	}
	pool.Wait()
}

func updateCheckSumProduct(graph *Graph, check int, varToCheck, checkToVar *mat2.Dense) {
	vars := graph.CheckVars(check)

	// total product of tanh(m/2) over nonzero terms, zeros counted apart
	// so the per edge exclusion is a single division
	product := 1.0
	zeros := 0
	zeroAt := -1
	for _, v := range vars {
		t := math.Tanh(varToCheck.At(check, v) / 2)
		if t == 0 {
			zeros++
			zeroAt = v
			continue
		}
		product *= t
	}

	for _, v := range vars {
		var extrinsic float64
		switch {
		case zeros > 1:
			extrinsic = 0
		case zeros == 1:
			if v == zeroAt {
				extrinsic = product
			}
		default:
			extrinsic = product / math.Tanh(varToCheck.At(check, v)/2)
		}
		checkToVar.Set(check, v, 2*math.Atanh(clampAtanh(extrinsic)))
	}
}

func updateCheckMinSum(graph *Graph, check int, varToCheck, checkToVar *mat2.Dense) {
	vars := graph.CheckVars(check)

	// smallest and second smallest magnitudes plus the sign parity give
	// the excluded minimum and sign for every edge
	min1 := math.Inf(1)
	min2 := math.Inf(1)
	min1At := -1
	negatives := 0
	for _, v := range vars {
		m := varToCheck.At(check, v)
		if m < 0 {
			negatives++
		}
		a := math.Abs(m)
		if a < min1 {
			min2 = min1
			min1 = a
			min1At = v
		} else if a < min2 {
			min2 = a
		}
	}

	for _, v := range vars {
		magnitude := min1
		if v == min1At {
			magnitude = min2
		}
		if math.IsInf(magnitude, 1) {
			// degree one check: the empty extrinsic set pins the variable
			// to 0, saturate at the same ceiling the clamp imposes
			checkToVar.Set(check, v, 2*math.Atanh(1-atanhEpsilon))
			continue
		}

		sign := 1.0
		if negatives%2 == 1 {
			sign = -1
		}
		if varToCheck.At(check, v) < 0 {
			sign = -sign
		}
		checkToVar.Set(check, v, sign*magnitude)
	}
}

// updateVariables computes the extrinsic variable to check messages and
// the per variable beliefs for one round. The belief is the channel LLR
// plus all incident check messages; each outgoing message subtracts back
// out the recipient's own contribution.
func updateVariables(ctx context.Context, graph *Graph, channel []float64, checkToVar, varToCheck *mat2.Dense, beliefs []float64, threads int) {
	vars := graph.Variables()
	pool := threadpool.NewFixedSize(ctx, threads, vars)
	for v := 0; v < vars; v++ {
		variable := v
		pool.Add(func() {
			total := channel[variable]
			for _, c := range graph.VarChecks(variable) {
				total += checkToVar.At(c, variable)
			}
			beliefs[variable] = total
			for _, c := range graph.VarChecks(variable) {
				varToCheck.Set(c, variable, total-checkToVar.At(c, variable))
			}
		})
	}
	pool.Wait()
}

func clampAtanh(x float64) float64 {
	limit := 1 - atanhEpsilon
	if x > limit {
		return limit
	}
	if x < -limit {
		return -limit
	}
	return x
}
