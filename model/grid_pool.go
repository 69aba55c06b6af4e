package model

import "sync"

// CellPool recycles generation buffers between steps
type CellPool struct {
	pool sync.Pool
}

func NewCellPool() *CellPool {
	return &CellPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new([]uint8)
			},
		},
	}
}

// Get retrieves a zeroed buffer of length n, reallocating if the pooled one is the wrong size
func (p *CellPool) Get(n int) []uint8 {
	buf := p.pool.Get().(*[]uint8)
	if len(*buf) != n {
		*buf = make([]uint8, n)
	} else {
		clear(*buf)
	}
	return *buf
}

// Put returns a buffer to the pool
func (p *CellPool) Put(buf []uint8) {
	if buf == nil {
		return
	}
	p.pool.Put(&buf)
}
