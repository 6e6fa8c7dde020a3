package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/alnah/go-pagedoc"
)

// Exporter is the engine surface used by the CLI.
type Exporter interface {
	Parse(ctx context.Context, text string, size pagedoc.PageSize) (*pagedoc.Document, error)
	Export(ctx context.Context, doc *pagedoc.Document, opts pagedoc.ExportOptions) (*pagedoc.ExportResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Exporter = (*pagedoc.Engine)(nil)

// Pool abstracts engine pool operations for testability.
type Pool interface {
	Acquire() Exporter
	Release(Exporter)
	InitError() error
	Size() int
	Close() error
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout     io.Writer
	Stderr     io.Writer
	IsTerminal func(w io.Writer) bool

	// NewPool builds the engine pool for export.
	NewPool func(n int, opts ...pagedoc.Option) Pool

	// NewEngine builds a single engine for render and serve.
	NewEngine func(opts ...pagedoc.Option) (Exporter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		IsTerminal: isTerminal,
		NewPool: func(n int, opts ...pagedoc.Option) Pool {
			return enginePool{pagedoc.NewEnginePool(n, opts...)}
		},
		NewEngine: func(opts ...pagedoc.Option) (Exporter, error) {
			return pagedoc.NewEngine(opts...)
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// enginePool adapts *pagedoc.EnginePool to Pool.
type enginePool struct {
	*pagedoc.EnginePool
}

func (p enginePool) Acquire() Exporter {
	e := p.EnginePool.Acquire()
	if e == nil {
		return nil
	}
	return e
}

// Release panics on exporters the pool did not create (programmer error).
func (p enginePool) Release(x Exporter) {
	if x == nil {
		return
	}
	e, ok := x.(*pagedoc.Engine)
	if !ok {
		panic(fmt.Sprintf("enginePool.Release: unexpected type %T", x))
	}
	p.EnginePool.Release(e)
}
