package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/alnah/go-pagedoc"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake exporter and pool
// ---------------------------------------------------------------------------

// fakePDF is what fakeExporter hands to OnComplete.
var fakePDF = []byte("%PDF-1.3 fake")

// fakeExporter parses with a real engine and fakes the browser export.
type fakeExporter struct {
	*pagedoc.Engine

	exportErr error

	mu       sync.Mutex
	exported []string // export file names, in call order
}

func (f *fakeExporter) Export(ctx context.Context, doc *pagedoc.Document, opts pagedoc.ExportOptions) (*pagedoc.ExportResult, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	name := opts.Filename + pagedoc.PDFExtension

	f.mu.Lock()
	f.exported = append(f.exported, name)
	f.mu.Unlock()

	for i := range doc.PageCount() {
		if opts.OnProgress != nil {
			opts.OnProgress(i+1, doc.PageCount())
		}
	}
	result := &pagedoc.ExportResult{PDF: fakePDF, Filename: name, Pages: doc.PageCount()}
	if opts.OnComplete != nil {
		if err := opts.OnComplete(ctx, fakePDF, name); err != nil {
			return result, err
		}
	}
	return result, nil
}

func newFakeExporter(t *testing.T, exportErr error, opts ...pagedoc.Option) *fakeExporter {
	t.Helper()
	engine, err := pagedoc.NewEngine(opts...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(func() { _ = engine.Close() })
	return &fakeExporter{Engine: engine, exportErr: exportErr}
}

// fakePool hands out a single shared exporter.
type fakePool struct {
	exporter *fakeExporter
	size     int
	initErr  error
	closed   bool
}

func (p *fakePool) Acquire() Exporter {
	if p.initErr != nil {
		return nil
	}
	return p.exporter
}
func (p *fakePool) Release(Exporter)   {}
func (p *fakePool) InitError() error   { return p.initErr }
func (p *fakePool) Size() int          { return p.size }
func (p *fakePool) Close() error       { p.closed = true; return nil }

// testEnv captures output and wires fakes.
type testEnv struct {
	*Environment
	stdout, stderr *bytes.Buffer
	pool           *fakePool
	terminal       bool
}

func newTestEnv(t *testing.T, exportErr error) *testEnv {
	t.Helper()
	te := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	te.pool = &fakePool{size: 2, exporter: newFakeExporter(t, exportErr)}
	te.Environment = &Environment{
		Stdout:     te.stdout,
		Stderr:     te.stderr,
		IsTerminal: func(io.Writer) bool { return te.terminal },
		NewPool: func(n int, _ ...pagedoc.Option) Pool {
			te.pool.size = n
			return te.pool
		},
		NewEngine: func(opts ...pagedoc.Option) (Exporter, error) {
			engine, err := pagedoc.NewEngine(opts...)
			if err != nil {
				return nil, err
			}
			return engine, nil
		},
	}
	return te
}

// writeFile writes content under dir, creating parents.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// writeTestPDF builds a PDF with one page per size (mm) using gofpdf.
func writeTestPDF(t *testing.T, dir string, sizes ...gofpdf.SizeType) string {
	t.Helper()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "mm", Size: sizes[0]})
	for _, s := range sizes {
		pdf.AddPageFormat("P", s)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("building PDF: %v", err)
	}
	path := filepath.Join(dir, "test.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}
