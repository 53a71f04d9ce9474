package simulator

import (
	"sync"

	"github.com/cwbudde/algo-nmr/internal/vec"
)

// spectrumPool reuses partial spectrum buffers across runs.
type spectrumPool struct {
	pool sync.Pool
}

func newSpectrumPool() *spectrumPool {
	return &spectrumPool{
		pool: sync.Pool{
			New: func() any {
				return new([]float64)
			},
		},
	}
}

// get returns a zeroed buffer of length n. Callers must return it via put.
func (p *spectrumPool) get(n int) *[]float64 {
	b := p.pool.Get().(*[]float64)
	*b = vec.EnsureLen(*b, n)
	vec.Zero(*b)
	return b
}

func (p *spectrumPool) put(b *[]float64) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
