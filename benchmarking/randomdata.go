package benchmarking

import (
	"math/rand"

	mat "github.com/nathanhack/sparsemat"
)

// RandomMessage creates a random message of length len.
func RandomMessage(len int) mat.SparseVector {
	message := mat.CSRVec(len)
	for i := 0; i < len; i++ {
		message.Set(i, rand.Intn(2))
	}
	return message
}

// RandomCrossover flips each bit of input independently with probability
// crossoverProbability, the textbook BSC.
func RandomCrossover(input mat.SparseVector, crossoverProbability float64) mat.SparseVector {
	output := mat.CSRVecCopy(input)

	for i := 0; i < output.Len(); i++ {
		if rand.Float64() < crossoverProbability {
			output.Set(i, output.At(i)+1)
		}
	}
	return output
}

// RandomFlipBitCount randomly flips min(numberOfBitsToFlip, input.Len())
// distinct bits, for trials that need an exact error weight.
func RandomFlipBitCount(input mat.SparseVector, numberOfBitsToFlip int) mat.SparseVector {
	output := mat.CSRVecCopy(input)

	flip := make(map[int]bool)
	for len(flip) < numberOfBitsToFlip && len(flip) < input.Len() {
		flip[rand.Intn(input.Len())] = true
	}

	for i := range flip {
		output.Set(i, output.At(i)+1)
	}
	return output
}
