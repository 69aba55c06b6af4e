package model

import (
	"strings"

	"github.com/pkg/errors"
)

// Boundary selects how neighbours beyond the grid edge are treated
type Boundary int

const (
	// Bounded treats everything outside the grid as permanently dead
	Bounded Boundary = iota
	// Toroidal wraps coordinates so opposite edges touch
	Toroidal
)

func (b Boundary) String() string {
	switch b {
	case Bounded:
		return "bounded"
	case Toroidal:
		return "toroidal"
	default:
		return "unknown"
	}
}

// ParseBoundary maps a config or flag value onto a Boundary.
// "0" and "1" are accepted as the fixed and wrapping modes respectively.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bounded", "fixed", "0":
		return Bounded, nil
	case "toroidal", "torus", "wrap", "1", "":
		return Toroidal, nil
	}
	return Toroidal, errors.Errorf("[ParseBoundary] unknown boundary mode: %+v", s)
}
