package beliefprop

import (
	mat "github.com/nathanhack/sparsemat"
)

// HardDecision converts a belief LLR into a bit: positive means 0,
// negative means 1. A belief of exactly 0 resolves to the tie break bit.
func HardDecision(belief float64, tieBreakOne bool) int {
	if belief > 0 {
		return 0
	}
	if belief < 0 {
		return 1
	}
	if tieBreakOne {
		return 1
	}
	return 0
}

// HardDecisions converts a belief vector into a bit vector.
func HardDecisions(beliefs []float64, tieBreakOne bool) mat.SparseVector {
	result := mat.CSRVec(len(beliefs))
	for i, b := range beliefs {
		if HardDecision(b, tieBreakOne) == 1 {
			result.Set(i, 1)
		}
	}
	return result
}

// CheckSyndrome returns true iff every parity check is satisfied, i.e.
// H*codeword == 0 over GF(2). This is both the early termination test and
// the definitive valid-codeword signal.
func CheckSyndrome(H mat.SparseMat, codeword mat.SparseVector) bool {
	rows, _ := H.Dims()
	syndrome := mat.CSRVec(rows)
	syndrome.MatMul(H, codeword)
	return syndrome.IsZero()
}
