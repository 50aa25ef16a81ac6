package cyk

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
)

// chart is a CYK table. Cell (i, l) holds the set of non-terminals deriving
// the l+1 words starting at position i, as a bit set.
type chart struct {
	n     int // number of words
	width int // number of uint64 per cell
	bits  []uint64
}

func (c *chart) reset(n int, nonterms int) {
	c.n = n
	c.width = (nonterms + 63) / 64
	size := n * n * c.width
	if cap(c.bits) < size {
		c.bits = make([]uint64, size)
		return
	}
	c.bits = c.bits[:size]
	for i := range c.bits {
		c.bits[i] = 0
	}
}

func (c *chart) cell(i, l int) []uint64 {
	offset := (l*c.n + i) * c.width
	return c.bits[offset : offset+c.width]
}

func has(cell []uint64, A int) bool {
	return cell[A/64]&(1<<(uint(A)%64)) != 0
}

func set(cell []uint64, A int) {
	cell[A/64] |= 1 << (uint(A) % 64)
}

func empty(cell []uint64) bool {
	for _, w := range cell {
		if w != 0 {
			return false
		}
	}
	return true
}

// --- Pooling ---------------------------------------------------------------

type chartPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalChartPool *chartPool

func init() {
	globalChartPool = &chartPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &chart{}, nil
		})
	globalChartPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalChartPool.opool = pool.NewObjectPool(globalChartPool.ctx, factory, config)
}

func borrowChart(n int, nonterms int) *chart {
	o, err := globalChartPool.opool.BorrowObject(globalChartPool.ctx)
	if err != nil {
		tracer().Errorf("cannot borrow chart from pool: %v", err)
		o = &chart{}
	}
	c := o.(*chart)
	c.reset(n, nonterms)
	return c
}

func (c *chart) release() {
	_ = globalChartPool.opool.ReturnObject(globalChartPool.ctx, c)
}
