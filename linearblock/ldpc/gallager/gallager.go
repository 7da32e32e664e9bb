package gallager

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

// Search constructs a Gallager LDPC code for a message of m bits with
// column weight wc and row weight wr, rejecting candidates whose Tanner
// graph contains a cycle shorter than smallestCycleAllowed (short cycles
// hurt belief propagation). It retries random permutations until maxIter
// attempts are exhausted.
func Search(ctx context.Context, m, wc, wr, smallestCycleAllowed, maxIter, threads int) (lb *linearblock.LinearBlock, err error) {
	if 3 > wc {
		return nil, fmt.Errorf("wc must be greater than or equal to 3")
	}
	if wc >= wr {
		return nil, fmt.Errorf("wc (%v) must be less than wr (%v)", wc, wr)
	}
	if m%wc != 0 {
		return nil, fmt.Errorf("wc (%v) must divide m (%v)", wc, m)
	}
	if smallestCycleAllowed%2 != 0 {
		return nil, fmt.Errorf("smallestCycle must be an even number")
	}
	if smallestCycleAllowed < 4 {
		return nil, fmt.Errorf("smallestCycle must at least 4")
	}

	N := m / wc * wr
	K := m / wc
	// HPrime seeds every H sub block
	HPrime := mat.DOKMat(K, N)
	for i := 0; i < K; i++ {
		offset := i * wr
		for col := 0; col < wr; col++ {
			HPrime.Set(i, col+offset, 1)
		}
	}
	iter := maxIter

	for iter > 0 {
		iter, lb, err = search(ctx, N, K, m, wc, iter, smallestCycleAllowed, threads, HPrime)
	}
	return
}

func search(ctx context.Context, N, K, m, wc, iter, smallestCycleAllowed, threads int, HPrime mat.SparseMat) (int, *linearblock.LinearBlock, error) {
	H := mat.DOKMat(m, N)

	// H stacks wc sub blocks: the first is HPrime, the rest are column
	// permutations of it; permutations that introduce short cycles or
	// dependent rows are retried
	s := 0
	for s < wc && iter > 0 {
		iter--
		logrus.Debugf("iterations remaining %v", iter)
		sub := HPrime
		if s > 0 {
			sub = permuteColumns(HPrime)
		}
		setSubH(H, sub, s)

		calGirth := linearblock.CalculateGirthLowerBound(ctx, H, smallestCycleAllowed, threads)
		if -1 < calGirth && calGirth < smallestCycleAllowed {
			continue
		}

		rank := internal.CalculateRank(ctx, H, threads, false)
		if rank != (s+1)*K {
			continue
		}
		s++
	}
	if s != wc {
		return iter, nil, fmt.Errorf("failed to find a solution")
	}
	logrus.Debugf("Gallager H matrix found")

	order, g := internal.NewFromH(ctx, H, threads)
	if order == nil {
		return iter, nil, fmt.Errorf("unable to create generator for H matrix")
	}

	return 0, &linearblock.LinearBlock{
		H: H,
		Processing: &linearblock.Systemic{
			HColumnOrder: order,
			G:            g,
		},
	}, nil
}

func permuteColumns(H mat.SparseMat) mat.SparseMat {
	rows, cols := H.Dims()
	result := mat.DOKMat(rows, cols)

	idx := make([]int, cols)
	for i := 0; i < cols; i++ {
		idx[i] = i
	}

	rand.Shuffle(len(idx), func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})

	for i, col := range idx {
		result.SetColumn(i, H.Column(col))
	}

	return result
}

func setSubH(H, Hsub mat.SparseMat, index int) {
	K, _ := Hsub.Dims()
	offset := index * K
	H.SetMatrix(Hsub, offset, 0)
}
