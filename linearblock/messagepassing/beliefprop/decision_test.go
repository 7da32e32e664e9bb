package beliefprop

import (
	"math/rand"
	"strconv"
	"testing"

	mat "github.com/nathanhack/sparsemat"
)

func TestHardDecision(t *testing.T) {
	tests := []struct {
		belief      float64
		tieBreakOne bool
		expected    int
	}{
		{2.5, false, 0},
		{0.0001, false, 0},
		{-2.5, false, 1},
		{-0.0001, false, 1},
		{0, false, 0},
		{0, true, 1},
		{2.5, true, 0},
		{-2.5, true, 1},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual := HardDecision(test.belief, test.tieBreakOne)
			if actual != test.expected {
				t.Fatalf("expected %v but found %v", test.expected, actual)
			}
		})
	}
}

func TestHardDecisions(t *testing.T) {
	beliefs := []float64{1.5, -0.25, 0, -3}
	expected := mat.CSRVec(4, 0, 1, 0, 1)

	actual := HardDecisions(beliefs, false)
	if !actual.Equals(expected) {
		t.Fatalf("expected %v but found %v", expected, actual)
	}
}

func TestCheckSyndrome(t *testing.T) {
	h := mat.CSRMat(3, 4,
		1, 1, 0, 0,
		0, 1, 1, 0,
		0, 0, 1, 1)
	tests := []struct {
		codeword mat.SparseVector
		expected bool
	}{
		{mat.CSRVec(4, 0, 0, 0, 0), true},
		{mat.CSRVec(4, 1, 1, 1, 1), true},
		{mat.CSRVec(4, 1, 0, 0, 0), false},
		{mat.CSRVec(4, 0, 1, 0, 0), false},
		{mat.CSRVec(4, 1, 1, 0, 0), false},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual := CheckSyndrome(h, test.codeword)
			if actual != test.expected {
				t.Fatalf("expected %v but found %v", test.expected, actual)
			}
		})
	}
}

// CheckSyndrome must agree with a direct row-by-row mod 2 parity sum.
func TestCheckSyndrome_MatchesRowParity(t *testing.T) {
	for trial := 0; trial < 100; trial++ {
		rows := rand.Intn(5) + 1
		cols := rand.Intn(8) + 1
		h := mat.DOKMat(rows, cols)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				h.Set(i, j, rand.Intn(2))
			}
		}
		codeword := mat.CSRVec(cols)
		for j := 0; j < cols; j++ {
			codeword.Set(j, rand.Intn(2))
		}

		expected := true
		for i := 0; i < rows; i++ {
			parity := 0
			for _, j := range h.Row(i).NonzeroArray() {
				parity ^= codeword.At(j)
			}
			if parity != 0 {
				expected = false
				break
			}
		}

		if CheckSyndrome(h, codeword) != expected {
			t.Fatalf("expected %v but found %v for H=%v codeword=%v", expected, !expected, h, codeword)
		}
	}
}
