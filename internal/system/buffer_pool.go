package system

import "sync"

// ScratchPool reuses float64 scratch buffers to reduce GC pressure
// when many masks are blurred in parallel. Buffers are pooled by
// length, one sync.Pool per size seen.
type ScratchPool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

var globalScratch = &ScratchPool{
	pools: make(map[int]*sync.Pool),
}

// GetScratch returns a float64 buffer of length n from the pool, or
// allocates one if none is available. Contents are not zeroed.
func GetScratch(n int) []float64 {
	return globalScratch.Get(n)
}

// PutScratch returns a buffer to the pool for reuse.
func PutScratch(buf []float64) {
	globalScratch.Put(buf)
}

func (p *ScratchPool) Get(n int) []float64 {
	p.mu.RLock()
	pool, exists := p.pools[n]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[n]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return make([]float64, n)
				},
			}
			p.pools[n] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().([]float64)
}

func (p *ScratchPool) Put(buf []float64) {
	if buf == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[len(buf)]
	p.mu.RUnlock()

	if exists {
		pool.Put(buf)
	}
}
