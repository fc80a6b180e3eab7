package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-engine/rules"
)

// CountNeighbors counts living neighbors of (r, c). Cells past the edge of
// the board are not neighbors; there is no wraparound.
func CountNeighbors(g *Grid, r, c int) int {
	count := 0
	for _, off := range rules.NeighborOffsets {
		nr, nc := r+off[0], c+off[1]
		if g.InBounds(nr, nc) && g.cells[nr][nc] {
			count++
		}
	}
	return count
}

// Step calculates the next generation. Every cell of the result is derived
// from g alone; g is left untouched.
func Step(g *Grid) *Grid {
	next := NewGrid(g.rows, g.cols)
	stepRows(g, next, 0, g.rows)
	return next
}

// StepParallel calculates the next generation splitting rows across workers.
// The result is identical to Step. workers <= 0 uses runtime.NumCPU.
func StepParallel(g *Grid, workers int) *Grid {
	next := NewGrid(g.rows, g.cols)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (g.rows + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		// Each worker writes a disjoint band of rows in next.
		eg.Go(func() error {
			stepRows(g, next, startRow, endRow)
			return nil
		})
	}

	_ = eg.Wait()

	return next
}

func stepRows(g, next *Grid, startRow, endRow int) {
	for r := startRow; r < endRow; r++ {
		for c := 0; c < g.cols; c++ {
			next.cells[r][c] = rules.ApplyConwayRules(CountNeighbors(g, r, c), g.cells[r][c])
		}
	}
}
