package internal

import (
	"context"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
)

func swapColOrder(i, j int, colIndices []int) {
	x := len(colIndices)
	if 0 <= i && i < x && 0 <= j && j < x {
		colIndices[i], colIndices[j] = colIndices[j], colIndices[i]
	}
}

func findPivotColGF2(H mat.SparseMat, forRow int) int {
	rows, _ := H.Dims()

	for r := forRow; r < rows; r++ {
		row := H.Row(r).NonzeroArray()
		if len(row) == 0 {
			continue
		}

		col := row[len(row)-1]
		if col > forRow {
			return col
		}
	}
	return -1
}

// GaussianJordanEliminationGF2 reduces H to [I,*] over GF(2), swapping
// columns when needed and returning the column swap history alongside.
// Returns nils when the rows are not linearly independent.
func GaussianJordanEliminationGF2(ctx context.Context, H mat.SparseMat, threads int) (mat.SparseMat, []int) {
	rows, cols := H.Dims()
	result := mat.CSRMatCopy(H)
	columnSwapHistory := make([]int, cols)

	for c := 0; c < cols; c++ {
		columnSwapHistory[c] = c
	}

	if cols < rows {
		// null space must equal the rank
		return nil, nil
	}

	// the lower triangle first to fail fast on dependent rows
	if lowerTriangular(ctx, rows, result, columnSwapHistory, threads, logrus.GetLevel() == logrus.DebugLevel) != rows {
		logrus.Debugf("all rows not linearly independent")
		return nil, nil
	}

	if !upperTriangular(ctx, rows, result, threads, logrus.GetLevel() == logrus.DebugLevel) {
		return nil, nil
	}

	logrus.Debugf("Gaussian-Jordan elimination complete")
	return result, columnSwapHistory
}

func upperTriangular(ctx context.Context, rows int, H mat.SparseMat, threads int, showProgressBar bool) bool {
	bar := pb.Full.New(rows)
	logrus.Debugf("reduced row echelon")
	bar.Set("prefix", "Processing Row ")
	bar.SetWriter(os.Stdout)
	if showProgressBar {
		bar.Start()
	}

	for r := 0; r < rows; r++ {
		bar.Increment()
		select {
		case <-ctx.Done():
			return false
		default:
		}
		eliminateOtherRows(ctx, r, H, threads)
	}
	bar.SetTemplateString(`{{string . "prefix"}}{{counters . }}{{string . "suffix"}}`)
	bar.Set("suffix", " Done")
	bar.Finish()
	return true
}

func pivotsSwapReturn(H mat.SparseMat, rowIndex int, columnsSwapHistory []int) []int {
	pivots := H.Column(rowIndex).NonzeroArray()
	if len(pivots) == 0 || pivots[len(pivots)-1] < rowIndex {
		// no pivot where it is needed, a column swap brings one in
		colPivot := findPivotColGF2(H, rowIndex)
		if colPivot == -1 {
			// no nonzero rows remain, the null space does not span the rank
			return nil
		}

		H.SwapColumns(rowIndex, colPivot)
		swapColOrder(rowIndex, colPivot, columnsSwapHistory)

		pivots = H.Column(rowIndex).NonzeroArray()
	}
	return pivots
}

func eliminateOtherRows(ctx context.Context, rowIndex int, result mat.SparseMat, threads int) {
	pivots := result.Column(rowIndex).NonzeroArray()
	pool := threadpool.NewFixedSize(ctx, threads, len(pivots)-1)
	rrow := result.Row(rowIndex)
	mut := sync.RWMutex{}

	// for all pivot rows except rowIndex add the pivot row (GF(2) subtract is add)
	for _, index := range pivots {
		pIndex := index
		if index == rowIndex {
			continue
		}
		pool.Add(func() {
			mut.RLock()
			prow := result.Row(pIndex)
			mut.RUnlock()
			prow.Add(prow, rrow)
			mut.Lock()
			result.SetRow(pIndex, prow)
			mut.Unlock()
		})
	}
	pool.Wait()
}

func eliminateLowerRows(ctx context.Context, rowIndex int, result mat.SparseMat, threads int) {
	pivots := result.Column(rowIndex).NonzeroArray()
	pool := threadpool.NewFixedSize(ctx, threads, len(pivots))
	rrow := result.Row(rowIndex)
	mut := sync.RWMutex{}

	for _, index := range pivots {
		pIndex := index
		pool.Add(func() {
			if pIndex <= rowIndex {
				return
			}
			mut.RLock()
			prow := result.Row(pIndex)
			mut.RUnlock()
			prow.Add(prow, rrow)
			mut.Lock()
			result.SetRow(pIndex, prow)
			mut.Unlock()
		})
	}
	pool.Wait()
}

// CalculateRank returns the GF(2) rank of H.
func CalculateRank(ctx context.Context, H mat.SparseMat, threads int, showProgressBar bool) int {
	if H == nil {
		return -1
	}

	tmp := mat.CSRMatCopy(H)

	rows, cols := H.Dims()

	min := rows
	if cols < rows {
		min = cols
	}
	columnSwapHistory := make([]int, cols)

	return lowerTriangular(ctx, min, tmp, columnSwapHistory, threads, showProgressBar)
}

func lowerTriangular(ctx context.Context, rows int, H mat.SparseMat, columnSwapHistory []int, threads int, showProgressBar bool) int {
	bar := pb.Full.New(rows)
	logrus.Debugf("row echelon")
	bar.Set("prefix", "Processing Row ")
	bar.SetWriter(os.Stdout)
	if showProgressBar {
		bar.Start()
	}

	for r := 0; r < rows; r++ {
		select {
		case <-ctx.Done():
			return -1
		default:
		}
		bar.Increment()

		pivots := pivotsSwapReturn(H, r, columnSwapHistory)
		if pivots == nil {
			return r
		}

		// the last pivot is a row at or below r, swap it up
		pivot := pivots[len(pivots)-1]
		H.SwapRows(r, pivot)

		// now the rth row has its pivot at (r,r), clear the rth column below it
		eliminateLowerRows(ctx, r, H, threads)
	}

	bar.SetTemplateString(`{{string . "prefix"}}{{counters . }}{{string . "suffix"}}`)
	bar.Set("suffix", " Done")
	bar.Finish()

	return rows
}
