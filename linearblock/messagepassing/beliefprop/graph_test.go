package beliefprop

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	mat "github.com/nathanhack/sparsemat"
)

func TestNewGraph(t *testing.T) {
	h := mat.CSRMat(3, 4,
		1, 1, 0, 0,
		0, 1, 1, 0,
		0, 0, 1, 1)

	g, err := NewGraph(h)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	if g.Checks() != 3 || g.Variables() != 4 {
		t.Fatalf("expected 3 checks and 4 variables but found %v and %v", g.Checks(), g.Variables())
	}

	expectedCheckVars := [][]int{{0, 1}, {1, 2}, {2, 3}}
	for c, expected := range expectedCheckVars {
		if !reflect.DeepEqual(g.CheckVars(c), expected) {
			t.Fatalf("expected %v but found %v", expected, g.CheckVars(c))
		}
	}

	expectedVarChecks := [][]int{{0}, {0, 1}, {1, 2}, {2}}
	for v, expected := range expectedVarChecks {
		if !reflect.DeepEqual(g.VarChecks(v), expected) {
			t.Fatalf("expected %v but found %v", expected, g.VarChecks(v))
		}
	}
}

func TestNewGraph_Symmetry(t *testing.T) {
	h := mat.CSRMat(4, 6,
		1, 1, 0, 1, 0, 0,
		0, 1, 1, 0, 1, 0,
		1, 0, 0, 0, 1, 1,
		0, 0, 1, 1, 0, 1)

	g, err := NewGraph(h)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	for c := 0; c < g.Checks(); c++ {
		for _, v := range g.CheckVars(c) {
			if !contains(g.VarChecks(v), c) {
				t.Fatalf("check %v lists variable %v but not vice versa", c, v)
			}
		}
	}
	for v := 0; v < g.Variables(); v++ {
		for _, c := range g.VarChecks(v) {
			if !contains(g.CheckVars(c), v) {
				t.Fatalf("variable %v lists check %v but not vice versa", v, c)
			}
		}
	}
}

func TestNewGraph_InvalidMatrix(t *testing.T) {
	tests := []struct {
		h mat.SparseMat
	}{
		{nil},
		{mat.CSRMat(2, 2, 1, 1, 0, 0)}, // zero check row
		{mat.CSRMat(1, 3)},             // all zeros
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := NewGraph(test.h)
			var ime InvalidMatrixError
			if !errors.As(err, &ime) {
				t.Fatalf("expected InvalidMatrixError but found %v", err)
			}
		})
	}
}

func contains(indices []int, value int) bool {
	for _, i := range indices {
		if i == value {
			return true
		}
	}
	return false
}
