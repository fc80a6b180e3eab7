package model

import (
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
)

func mustSet(t *testing.T, g *Grid, cells ...[2]int) *Grid {
	t.Helper()
	for _, cell := range cells {
		var err error
		if g, err = g.Set(cell[0], cell[1], true); err != nil {
			t.Fatalf("Set(%d,%d): %v", cell[0], cell[1], err)
		}
	}
	return g
}

func TestNewGridIsBlank(t *testing.T) {
	g := NewGrid(25, 40)
	if g.Rows() != 25 || g.Cols() != 40 {
		t.Fatalf("dimensions = %dx%d, want 25x40", g.Rows(), g.Cols())
	}
	if !g.IsEmpty() {
		t.Fatal("new grid should be empty")
	}
	if g.Population() != 0 {
		t.Fatalf("population = %d, want 0", g.Population())
	}
}

func TestNewGridClampsDimensions(t *testing.T) {
	g := NewGrid(0, -3)
	if g.Rows() != 1 || g.Cols() != 1 {
		t.Fatalf("dimensions = %dx%d, want 1x1", g.Rows(), g.Cols())
	}
}

func TestGetOutOfBoundsIsDead(t *testing.T) {
	g := mustSet(t, NewGrid(3, 3), [2]int{0, 0})
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if g.Get(rc[0], rc[1]) {
			t.Fatalf("Get(%d,%d) = alive, want dead", rc[0], rc[1])
		}
	}
	if !g.Get(0, 0) {
		t.Fatal("Get(0,0) = dead, want alive")
	}
}

func TestToggleReturnsNewGrid(t *testing.T) {
	g := NewGrid(4, 4)
	next, err := g.Toggle(1, 2)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if g.Get(1, 2) {
		t.Fatal("Toggle mutated the original grid")
	}
	if !next.Get(1, 2) {
		t.Fatal("toggled cell should be alive")
	}
	if next.Population() != 1 {
		t.Fatalf("population = %d, want 1", next.Population())
	}
}

func TestToggleIsInvolution(t *testing.T) {
	g := NewGrid(6, 7).Randomize(0.5, rand.New(rand.NewPCG(7, 0)))
	for r := range g.Rows() {
		for c := range g.Cols() {
			once, err := g.Toggle(r, c)
			if err != nil {
				t.Fatalf("Toggle(%d,%d): %v", r, c, err)
			}
			twice, err := once.Toggle(r, c)
			if err != nil {
				t.Fatalf("Toggle(%d,%d): %v", r, c, err)
			}
			if !twice.Equal(g) {
				t.Fatalf("double toggle of (%d,%d) did not restore the grid", r, c)
			}
		}
	}
}

func TestToggleInvalidCoordinate(t *testing.T) {
	g := NewGrid(5, 5)
	for _, rc := range [][2]int{{-1, 0}, {5, 0}, {0, 5}, {0, -1}} {
		_, err := g.Toggle(rc[0], rc[1])
		if !errors.Is(err, ErrInvalidCoordinate) {
			t.Fatalf("Toggle(%d,%d) err = %v, want ErrInvalidCoordinate", rc[0], rc[1], err)
		}
	}
	if _, err := g.Set(9, 9, true); !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("Set err = %v, want ErrInvalidCoordinate", err)
	}
}

func TestRandomizeThreshold(t *testing.T) {
	g := NewGrid(50, 50)
	rng := rand.New(rand.NewPCG(42, 0))

	if got := g.Randomize(1, rng); !got.IsEmpty() {
		t.Fatal("threshold 1 should leave every cell dead")
	}

	filled := g.Randomize(0.7, rng)
	if filled.Rows() != 50 || filled.Cols() != 50 {
		t.Fatalf("dimensions = %dx%d, want 50x50", filled.Rows(), filled.Cols())
	}
	density := float64(filled.Population()) / 2500
	if density < 0.22 || density > 0.38 {
		t.Fatalf("density = %.3f, want about 0.3", density)
	}
	if !g.IsEmpty() {
		t.Fatal("Randomize mutated the original grid")
	}
}

func TestRandomizeSeeded(t *testing.T) {
	a := NewGrid(10, 10).Randomize(0.7, rand.New(rand.NewPCG(1, 2)))
	b := NewGrid(10, 10).Randomize(0.7, rand.New(rand.NewPCG(1, 2)))
	if !a.Equal(b) {
		t.Fatal("same seed should produce the same grid")
	}
}

func TestFromCells(t *testing.T) {
	g, err := FromCells([][]bool{
		{false, true},
		{true, false},
	})
	if err != nil {
		t.Fatalf("FromCells: %v", err)
	}
	if !g.Get(0, 1) || !g.Get(1, 0) || g.Population() != 2 {
		t.Fatal("FromCells did not copy cells")
	}

	if _, err = FromCells([][]bool{{true}, {true, false}}); err == nil {
		t.Fatal("ragged matrix should be rejected")
	}
	if _, err = FromCells(nil); err == nil {
		t.Fatal("empty matrix should be rejected")
	}
}

func TestCellsReturnsCopy(t *testing.T) {
	g := mustSet(t, NewGrid(2, 2), [2]int{0, 0})
	cells := g.Cells()
	cells[0][0] = false
	if !g.Get(0, 0) {
		t.Fatal("modifying Cells() leaked into the grid")
	}
}

func TestHash(t *testing.T) {
	a := mustSet(t, NewGrid(3, 3), [2]int{1, 1})
	b := mustSet(t, NewGrid(3, 3), [2]int{1, 1})
	if a.Hash() != b.Hash() {
		t.Fatal("equal grids should hash equally")
	}
	c := mustSet(t, NewGrid(3, 3), [2]int{1, 2})
	if a.Hash() == c.Hash() {
		t.Fatal("different grids should hash differently")
	}
	if NewGrid(2, 3).Hash() == NewGrid(3, 2).Hash() {
		t.Fatal("hash should depend on dimensions")
	}
}

func TestPlaceClipsAtEdges(t *testing.T) {
	g := NewGrid(4, 4).Place(Glider, 2, 2)
	// Only the glider cells that land inside a 4x4 board survive.
	want := mustSet(t, NewGrid(4, 4), [2]int{2, 3})
	if !g.Equal(want) {
		t.Fatalf("Place clipped incorrectly: population %d", g.Population())
	}
}
