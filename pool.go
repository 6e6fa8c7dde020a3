package pagedoc

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// EnginePool manages Engines for parallel exports. Each engine has its own
// browser and still runs one export at a time. Engines are created lazily
// on first acquire to avoid startup delay.
type EnginePool struct {
	size    int
	opts    []Option
	engines []*Engine
	sem     chan *Engine
	mu      sync.Mutex
	created int
	closed  bool
	initErr error
}

// NewEnginePool creates a pool with capacity for n engines built with opts.
func NewEnginePool(n int, opts ...Option) *EnginePool {
	if n < 1 {
		n = 1
	}
	return &EnginePool{
		size:    n,
		opts:    opts,
		engines: make([]*Engine, 0, n),
		sem:     make(chan *Engine, n),
	}
}

// Acquire gets an engine from the pool, creating one if needed.
// Blocks if all engines are in use. Returns nil if engine creation failed;
// see InitError.
func (p *EnginePool) Acquire() *Engine {
	// Try to get an existing engine (non-blocking)
	select {
	case e := <-p.sem:
		return e
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new engine outside the lock
		e, err := NewEngine(p.opts...)

		p.mu.Lock()
		if err != nil {
			p.created--
			p.initErr = err
			p.mu.Unlock()
			return nil
		}
		p.engines = append(p.engines, e)
		p.mu.Unlock()
		return e
	}
	p.mu.Unlock()

	// All engines created, wait for one to be released
	return <-p.sem
}

// Release returns an engine to the pool. The send happens under the lock so
// a concurrent Close cannot close the channel first; it never blocks since
// the channel holds every engine the pool created.
func (p *EnginePool) Release(e *Engine) {
	if e == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.sem <- e:
	default:
	}
}

// InitError returns the last engine creation error.
func (p *EnginePool) InitError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initErr
}

// Close releases all browser resources.
// Returns an aggregated error if multiple engines fail to close.
func (p *EnginePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	engines := p.engines
	p.mu.Unlock()

	var errs []error
	for _, e := range engines {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *EnginePool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
