package model

// Pattern is a small block of cells, indexed [row][col], stamped onto a grid.
type Pattern [][]bool

var (
	// Blinker is the period-2 horizontal oscillator.
	Blinker = Pattern{
		{true, true, true},
	}

	// Glider travels one cell diagonally every 4 generations.
	Glider = Pattern{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}
)

// Place returns a copy of the grid with the pattern's live cells stamped at
// (r, c). Cells falling off the board are dropped.
func (g *Grid) Place(p Pattern, r, c int) *Grid {
	next := g.clone()
	for dr, row := range p {
		for dc, alive := range row {
			if alive && next.InBounds(r+dr, c+dc) {
				next.cells[r+dr][c+dc] = true
			}
		}
	}
	return next
}
