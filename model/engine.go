package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
)

// Engine advances a Grid one generation at a time
type Engine struct {
	boundary Boundary
	workers  int
	pool     *CellPool
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithWorkers sets how many row partitions are computed in parallel. Values below 1 mean one per CPU.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithPool reuses generation buffers from pool instead of allocating each step
func WithPool(pool *CellPool) EngineOption {
	return func(e *Engine) {
		e.pool = pool
	}
}

func NewEngine(boundary Boundary, opts ...EngineOption) *Engine {
	e := &Engine{boundary: boundary}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.NumCPU()
	}
	return e
}

// Step computes the next generation against a snapshot of the current one and swaps it in.
// Every cell reads only previous-generation values.
func (e *Engine) Step(g *Grid) {
	g.mu.RLock()
	var next []uint8
	if e.pool != nil {
		next = e.pool.Get(len(g.cells))
	} else {
		next = make([]uint8, len(g.cells))
	}

	var (
		eg            errgroup.Group
		cur           = g.cells
		width, height = g.width, g.height
		numWorkers    = min(e.workers, height)
		rowsPerWorker = (height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
		)
		if startRow >= height {
			break
		}

		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				for x := 0; x < width; x++ {
					idx := y*width + x
					n := countNeighbors(cur, width, height, e.boundary, x, y)
					if rules.NextState(n, cur[idx] == 1) {
						next[idx] = 1
					}
				}
			}
			return nil
		})
	}
	// workers never fail
	_ = eg.Wait()
	g.mu.RUnlock()

	prev := g.swap(next)
	if e.pool != nil {
		e.pool.Put(prev)
	}
}

// Run advances the grid n generations
func (e *Engine) Run(g *Grid, n int) {
	for range n {
		e.Step(g)
	}
}
