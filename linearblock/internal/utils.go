package internal

import (
	"context"

	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

// ExtractAFromH reduces H to [I,A], converts to [A,I] bookkeeping the
// column order, and returns the A submatrix with the ordering.
func ExtractAFromH(ctx context.Context, H mat.SparseMat, threads int) (A mat.SparseMat, columnOrdering []int) {
	m, N := H.Dims()

	gje, ordering := GaussianJordanEliminationGF2(ctx, H, threads)

	if gje == nil {
		return nil, nil
	}

	// verify the [I,*] form
	actual := gje.Slice(0, 0, m, m)
	ident := mat.CSRIdentity(m)
	if !actual.Equals(ident) {
		logrus.Errorf("failed to transform H matrix into [I,*]")
		return nil, nil
	}

	// convert gje from [I,A] to [A,I] while keeping track
	columnOrdering = make([]int, len(ordering))
	copy(columnOrdering[0:N-m], ordering[m:N])
	copy(columnOrdering[N-m:N], ordering[0:m])

	A = gje.Slice(0, m, m, N-m)
	return
}

// NewFromH derives the systematic generator G for parity matrix H.
// Note: the resulting column order may differ from H's, HColumnOrder
// records the swaps.
func NewFromH(ctx context.Context, H mat.SparseMat, threads int) (HColumnOrder []int, G mat.SparseMat) {
	hrows, hcols := H.Dims()
	if hrows >= hcols {
		panic("H matrix shape == (rows, cols) where rows < cols required")
	}

	// reduce H=[*] -> H=[A,I], extracting A and the column swaps
	logrus.Debugf("creating generator matrix from H matrix")
	A, columnSwaps := ExtractAFromH(ctx, H, threads)
	if A == nil {
		logrus.Debugf("unable to create generator matrix from H")
		return nil, nil
	}

	AT := A.T()
	atRows, atCols := AT.Dims()

	// with A in hand, G=[I, A^T]
	G = mat.DOKMat(atRows, atRows+atCols)
	G.SetMatrix(mat.CSRIdentity(atRows), 0, 0)
	G.SetMatrix(AT, 0, atRows)

	logrus.Debugf("generator matrix complete")
	return columnSwaps, G
}

// ColumnSwapped returns H with its columns reordered by order.
func ColumnSwapped(H mat.SparseMat, order []int) mat.SparseMat {
	rows, cols := H.Dims()
	result := mat.CSRMat(rows, cols)

	for c, c1 := range order {
		result.SetColumn(c, H.Column(c1))
	}
	return result
}

// ValidateHGMatrices tests G*H.T == 0 where H.T is the transpose of H.
func ValidateHGMatrices(G, H mat.SparseMat) bool {
	rows, _ := G.Dims()
	cols, _ := H.Dims()

	// cache H's rows, equivalent to columns of H.T
	cache := make([]mat.SparseVector, cols)
	for i := 0; i < cols; i++ {
		cache[i] = H.Row(i)
	}
	for i := 0; i < rows; i++ {
		row := G.Row(i)
		for j := 0; j < cols; j++ {
			if row.Dot(cache[j]) > 0 {
				return false
			}
		}
	}

	return true
}
