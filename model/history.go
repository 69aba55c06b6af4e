package model

// History keeps recent grid hashes for cycle detection
type History struct {
	size   int
	hashes []string
}

// NewHistory keeps at most size hashes; values below 3 are raised to 3
func NewHistory(size int) *History {
	return &History{size: max(size, 3)}
}

// Record adds the grid's current state and drops the oldest entry past capacity
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.GetGridHash())
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// Reset forgets every recorded state
func (h *History) Reset() {
	h.hashes = nil
}

// IsStagnant reports whether the grid matches one of the last three recorded states,
// which covers still lifes and period-2 and period-3 oscillators
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}
	current := g.GetGridHash()
	for _, prev := range h.hashes[len(h.hashes)-3:] {
		if prev == current {
			return true
		}
	}
	return false
}
