package linearblock

import (
	"context"
	"math"
	"sync"

	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
)

// Girth of the Tanner graph matters to iterative decoders: short cycles
// (4-cycles especially) correlate the messages loopy belief propagation
// exchanges and degrade its convergence, so code constructions screen
// for them.

type girthNode struct {
	parentIndex int
}

// CalculateGirth calculates the girth of the Tanner graph induced by m.
// threads specifies the number of threads to use, if <=0 it will use runtime.NumCPU()
func CalculateGirth(ctx context.Context, m mat.SparseMat, threads int) int {
	return CalculateGirthLowerBound(ctx, m, -1, threads)
}

// CalculateGirthLowerBound returns the length of the smallest cycle found
// with length <= smallestGirth (or any length when smallestGirth == -1).
// If no such cycle exists it returns -1.
// threads specifies the number of threads to use, if <=0 it will use runtime.NumCPU()
func CalculateGirthLowerBound(ctx context.Context, m mat.SparseMat, smallestGirth, threads int) int {
	if smallestGirth != -1 && (smallestGirth < 4 || smallestGirth%2 != 0) {
		panic("smallestGirth == -1 or smallestGirth must be an even number >=4")
	}

	rows, _ := m.Dims()

	pool := threadpool.New(ctx, threads)
	calculated := -1
	mux := sync.RWMutex{}
	for i := 0; i < rows; i++ {
		index := i
		pool.Add(func() {
			mux.RLock()
			g := CalculateCycleLowerBound(m, index, smallestGirth)
			mux.RUnlock()

			mux.Lock()
			if g > 0 && (g <= smallestGirth || smallestGirth == -1) {
				smallestGirth = g
				calculated = g
			}
			mux.Unlock()
		})
	}
	pool.Wait()
	return calculated
}

// HasGirthSmallerThan returns true if the Tanner graph of m contains a
// cycle shorter than cycleLen.
// threads specifies the number of threads to use, if <=0 it will use runtime.NumCPU()
func HasGirthSmallerThan(ctx context.Context, m mat.SparseMat, cycleLen, threads int) bool {
	if cycleLen != -1 && cycleLen < 4 {
		panic("cycleLen == -1 or cycleLen >=4 required")
	}

	rows, _ := m.Dims()
	pool := threadpool.New(ctx, threads)
	smaller := false
	mux := sync.RWMutex{}
	for i := 0; i < rows; i++ {
		index := i
		pool.Add(func() {
			mux.RLock()
			if smaller {
				mux.RUnlock()
				return
			}
			g := CalculateCycleLowerBound(m, index, cycleLen)
			mux.RUnlock()

			mux.Lock()
			if g > 0 && g < cycleLen {
				smaller = true
			}
			mux.Unlock()
		})
	}
	pool.Wait()
	return smaller
}

// CalculateCycleLowerBound runs a BFS starting at the checkIndex check
// node for maxGirth/2 steps (unbounded when maxGirth == -1) and returns
// the length of the smallest cycle through that check (up to maxGirth),
// or -1 if none was found.
func CalculateCycleLowerBound(m mat.SparseMat, checkIndex, maxGirth int) int {
	if maxGirth == -1 {
		maxGirth = math.MaxInt64
	}
	// history alternates between variable node and check node hops as the
	// BFS extends away from checkIndex
	history := make([]map[int]girthNode, 0)
	rows, _ := m.Dims()

	// prime the history
	hop := make(map[int]girthNode)
	for _, i := range m.Row(checkIndex).NonzeroArray() {
		hop[i] = girthNode{parentIndex: checkIndex}
	}
	// a check with <=1 variables cannot be part of a cycle
	if len(hop) <= 1 {
		return -1
	}
	history = append(history, hop)

	for level := 1; level < 2*rows && level < maxGirth/2+1; level++ {
		prevHop := history[level-1]
		hop := make(map[int]girthNode)
		for v, gn := range prevHop {
			levelHop := level % 2
			var indices []int
			if levelHop == 0 {
				indices = m.Row(v).NonzeroArray()
			} else {
				indices = m.Column(v).NonzeroArray()
			}
			for _, i := range indices {
				if i == gn.parentIndex {
					continue
				}
				_, has := hop[i]
				if has || (levelHop == 1 && i == checkIndex) {
					return (level + 1) * 2
				}
				hop[i] = girthNode{parentIndex: v}
			}
		}
		history = append(history, hop)
	}
	return -1
}
