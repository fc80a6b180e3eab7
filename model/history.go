package model

// DefaultHistorySize keeps enough states to catch still lifes and period-2 and
// period-3 oscillators.
const DefaultHistorySize = 5

// History stores hashes of recent grid states for cycle detection.
type History struct {
	size   int
	hashes []string
}

// NewHistory returns a History remembering the last size states.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// Record adds the grid state to history and maintains size
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.Hash())
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// Repeats reports whether g matches one of the recorded states, i.e. the
// board is static or cycling with a period no longer than the history.
func (h *History) Repeats(g *Grid) bool {
	current := g.Hash()
	for _, hash := range h.hashes {
		if hash == current {
			return true
		}
	}
	return false
}

// Len returns the number of recorded states.
func (h *History) Len() int {
	return len(h.hashes)
}

// Reset forgets all recorded states.
func (h *History) Reset() {
	h.hashes = nil
}
