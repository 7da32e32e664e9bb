package beliefprop

import (
	"fmt"

	mat "github.com/nathanhack/sparsemat"
)

// Graph is the Tanner graph induced by a parity check matrix H: one check
// node per row, one variable node per column, and an edge wherever
// H[check][variable] == 1. Adjacency is cached as index slices (ascending
// order) so iteration is deterministic and safe to fan out across threads.
type Graph struct {
	H           mat.SparseMat
	checkToVars [][]int
	varToChecks [][]int
}

// NewGraph builds the Tanner graph for H. H is borrowed, not copied, and
// must not be mutated for the life of the graph. A check row with no
// variables is rejected since such a check can never be satisfied or
// contribute a message. Note sparsemat stores GF(2) entries so values
// outside {0,1} are unrepresentable by construction.
func NewGraph(H mat.SparseMat) (*Graph, error) {
	if H == nil {
		return nil, InvalidMatrixError{Reason: "nil matrix"}
	}

	checks, vars := H.Dims()
	if checks == 0 || vars == 0 {
		return nil, InvalidMatrixError{Reason: fmt.Sprintf("matrix shape (%v,%v) has no nodes", checks, vars)}
	}

	g := &Graph{
		H:           H,
		checkToVars: make([][]int, checks),
		varToChecks: make([][]int, vars),
	}

	for v := range g.varToChecks {
		g.varToChecks[v] = make([]int, 0)
	}

	for c := 0; c < checks; c++ {
		g.checkToVars[c] = H.Row(c).NonzeroArray()
		if len(g.checkToVars[c]) == 0 {
			return nil, InvalidMatrixError{Reason: fmt.Sprintf("check %v has no variables", c)}
		}
		for _, v := range g.checkToVars[c] {
			g.varToChecks[v] = append(g.varToChecks[v], c)
		}
	}

	return g, nil
}

// Checks returns the number of check nodes (rows of H).
func (g *Graph) Checks() int {
	return len(g.checkToVars)
}

// Variables returns the number of variable nodes (columns of H).
func (g *Graph) Variables() int {
	return len(g.varToChecks)
}

// CheckVars returns the variable indices incident to the check node.
// The returned slice is owned by the graph and must not be mutated.
func (g *Graph) CheckVars(check int) []int {
	return g.checkToVars[check]
}

// VarChecks returns the check indices incident to the variable node.
// The returned slice is owned by the graph and must not be mutated.
func (g *Graph) VarChecks(variable int) []int {
	return g.varToChecks[variable]
}
