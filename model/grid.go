package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrAllocation is returned when a grid is requested with non-positive dimensions
	ErrAllocation = errors.New("invalid grid dimensions")
	// ErrOutOfBounds is returned when a cell outside the grid is read or written
	ErrOutOfBounds = errors.New("cell out of bounds")
)

// Grid represents the game board as a single row-major buffer of 0/1 cells
type Grid struct {
	mu     sync.RWMutex
	width  int
	height int
	cells  []uint8
}

// NewGrid creates a new grid with the specified dimensions, all cells dead
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrAllocation, "[NewGrid] width: %+v, height: %+v", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}, nil
}

// NewRNG returns a deterministic random source for Randomize
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(x, y int, alive bool) error {
	if !g.inside(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "[Set] (%d,%d) outside %dx%d", x, y, g.width, g.height)
	}
	g.mu.Lock()
	g.cells[g.index(x, y)] = boolToCell(alive)
	g.mu.Unlock()
	return nil
}

// Get returns the state of a cell
func (g *Grid) Get(x, y int) (bool, error) {
	if !g.inside(x, y) {
		return false, errors.Wrapf(ErrOutOfBounds, "[Get] (%d,%d) outside %dx%d", x, y, g.width, g.height)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[g.index(x, y)] == 1, nil
}

// Alive reports whether a cell is alive. Cells outside the grid read as dead.
func (g *Grid) Alive(x, y int) bool {
	if !g.inside(x, y) {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[g.index(x, y)] == 1
}

// Cells returns a copy of the current generation in row-major order
func (g *Grid) Cells() []uint8 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]uint8, len(g.cells))
	copy(out, g.cells)
	return out
}

// Clear kills every cell
func (g *Grid) Clear() {
	g.mu.Lock()
	clear(g.cells)
	g.mu.Unlock()
}

// Randomize sets every cell alive with probability 0.5 using rng
func (g *Grid) Randomize(rng *rand.Rand) {
	g.mu.Lock()
	for i := range g.cells {
		g.cells[i] = uint8(rng.IntN(2))
	}
	g.mu.Unlock()
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.cells {
		count += int(c)
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fmt.Sprintf("%x", md5.Sum(g.cells))
}

// swap installs next as the current generation and hands back the old buffer
func (g *Grid) swap(next []uint8) []uint8 {
	g.mu.Lock()
	prev := g.cells
	g.cells = next
	g.mu.Unlock()
	return prev
}

func boolToCell(alive bool) uint8 {
	if alive {
		return 1
	}
	return 0
}
