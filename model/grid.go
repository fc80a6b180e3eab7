package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// ErrInvalidCoordinate is returned when a cell outside the board is addressed.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Grid represents the game board. A Grid is never modified once returned to
// a caller; every operation that changes cells produces a new Grid.
type Grid struct {
	rows  int
	cols  int
	cells [][]bool
}

// NewGrid creates a new grid with the specified dimensions, all cells dead
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// FromCells builds a grid from a rectangular matrix of cell states.
func FromCells(cells [][]bool) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, errors.New("[FromCells] empty cell matrix")
	}
	g := NewGrid(len(cells), len(cells[0]))
	for r, row := range cells {
		if len(row) != g.cols {
			return nil, errors.Errorf("[FromCells] row %d has %d cells, want %d", r, len(row), g.cols)
		}
		copy(g.cells[r], row)
	}
	return g, nil
}

// Rows returns the number of rows of the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns of the grid
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (r, c) addresses a cell of the grid
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// Get returns the state of a cell; cells outside the board read as dead
func (g *Grid) Get(r, c int) bool {
	if !g.InBounds(r, c) {
		return false
	}
	return g.cells[r][c]
}

// Set returns a copy of the grid with cell (r, c) set to alive
func (g *Grid) Set(r, c int, alive bool) (*Grid, error) {
	if !g.InBounds(r, c) {
		return nil, errors.Wrapf(ErrInvalidCoordinate, "[Set] (%d,%d) outside %dx%d grid", r, c, g.rows, g.cols)
	}
	next := g.clone()
	next.cells[r][c] = alive
	return next, nil
}

// Toggle returns a copy of the grid with cell (r, c) flipped
func (g *Grid) Toggle(r, c int) (*Grid, error) {
	if !g.InBounds(r, c) {
		return nil, errors.Wrapf(ErrInvalidCoordinate, "[Toggle] (%d,%d) outside %dx%d grid", r, c, g.rows, g.cols)
	}
	next := g.clone()
	next.cells[r][c] = !g.cells[r][c]
	return next, nil
}

// Randomize returns a grid of the same size where a cell is alive when a
// uniform draw in [0, 1) exceeds threshold. A nil rng uses the global source.
func (g *Grid) Randomize(threshold float64, rng *rand.Rand) *Grid {
	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}
	next := NewGrid(g.rows, g.cols)
	for r := range next.rows {
		for c := range next.cols {
			next.cells[r][c] = draw() > threshold
		}
	}
	return next
}

// Blank returns an all-dead grid of the same size
func (g *Grid) Blank() *Grid {
	return NewGrid(g.rows, g.cols)
}

// IsEmpty reports whether every cell is dead
func (g *Grid) IsEmpty() bool {
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// Population returns the total number of living cells
func (g *Grid) Population() (count int) {
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] {
				count++
			}
		}
	}
	return
}

// Equal reports whether both grids have the same size and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] != other.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// Cells returns a copy of the cell matrix indexed [row][col]
func (g *Grid) Cells() [][]bool {
	return g.clone().cells
}

// Hash returns an MD5 hash of the grid state
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.rows, g.cols)
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (g *Grid) clone() *Grid {
	next := NewGrid(g.rows, g.cols)
	for r := range g.rows {
		copy(next.cells[r], g.cells[r])
	}
	return next
}
