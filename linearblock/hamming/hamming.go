package hamming

import (
	"context"
	"fmt"

	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
)

// New creates the systematic Hamming code with paritySymbols number of
// parity symbols. Hamming codes can detect up to two-bit errors or
// correct one-bit errors, which makes them handy small codes to exercise
// decoders against.
func New(ctx context.Context, paritySymbols int, threads int) (*linearblock.LinearBlock, error) {
	if paritySymbols < 3 {
		return nil, fmt.Errorf("hamming codes require >=3 parity symbols but found %v", paritySymbols)
	}
	n := 1<<paritySymbols - 1
	H := mat.CSRMat(paritySymbols, n)

	// the columns of H are the bit patterns of every number in [1,n]
	for i := 1; i <= n; i++ {
		vec := mat.CSRVec(paritySymbols)
		for j := 0; j < paritySymbols; j++ {
			if i&(1<<j) > 0 {
				vec.Set(j, 1)
			}
		}
		H.SetColumn(i-1, vec)
	}

	order, g := internal.NewFromH(ctx, H, threads)
	if order == nil {
		return nil, fmt.Errorf("unable to create generator for H matrix")
	}

	return &linearblock.LinearBlock{
		H: H,
		Processing: &linearblock.Systemic{
			HColumnOrder: order,
			G:            g,
		},
	}, nil
}
