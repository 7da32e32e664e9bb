package beliefprop

import "fmt"

// InvalidMatrixError indicates the parity check matrix cannot induce a
// usable Tanner graph (nil matrix, empty dimensions, or a check row with
// no variables).
type InvalidMatrixError struct {
	Reason string
}

func (e InvalidMatrixError) Error() string {
	return fmt.Sprintf("invalid parity check matrix: %v", e.Reason)
}

// DomainError indicates a crossover probability outside of (0,1), for
// which the channel log likelihood ratio is undefined.
type DomainError struct {
	CrossoverProbability float64
}

func (e DomainError) Error() string {
	return fmt.Sprintf("crossover probability must be in (0,1) but found %v", e.CrossoverProbability)
}

// DimensionMismatchError indicates the received vector length does not
// equal the number of variable nodes in the graph.
type DimensionMismatchError struct {
	Expected, Found int
}

func (e DimensionMismatchError) Error() string {
	return fmt.Sprintf("received vector length == %v is required but found %v", e.Expected, e.Found)
}
