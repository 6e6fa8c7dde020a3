package pagedoc

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
)

// testPNG returns an opaque PNG of w x h pixels.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding PNG: %v", err)
	}
	return buf.Bytes()
}

// fakeOpener hands out fakeSurfaces with one page per document page.
type fakeOpener struct {
	mu      sync.Mutex
	png     []byte
	openErr error
	pages   func(doc *Document) int // nil means doc.PageCount()
	capture func(ctx context.Context, index int) ([]byte, error)

	opened   int
	closed   bool
	captured []int
}

func (o *fakeOpener) Open(ctx context.Context, doc *Document) (surface, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.openErr != nil {
		return nil, o.openErr
	}
	o.opened++
	n := doc.PageCount()
	if o.pages != nil {
		n = o.pages(doc)
	}
	return &fakeSurface{opener: o, n: n}, nil
}

func (o *fakeOpener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return nil
}

func (o *fakeOpener) record(index int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.captured = append(o.captured, index)
}

func (o *fakeOpener) capturedPages() []int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]int(nil), o.captured...)
}

type fakeSurface struct {
	opener *fakeOpener
	n      int
	closed bool
}

func (s *fakeSurface) Pages(ctx context.Context) ([]pageElement, error) {
	pages := make([]pageElement, s.n)
	for i := range pages {
		pages[i] = &fakePage{opener: s.opener, index: i}
	}
	return pages, nil
}

func (s *fakeSurface) Close() error {
	s.closed = true
	return nil
}

type fakePage struct {
	opener *fakeOpener
	index  int
}

func (p *fakePage) Capture(ctx context.Context) ([]byte, error) {
	p.opener.record(p.index)
	if p.opener.capture != nil {
		return p.opener.capture(ctx, p.index)
	}
	return p.opener.png, nil
}

// failingRenderer fails on one page index.
type failingRenderer struct {
	failOn int
	calls  int
}

var errRender = errors.New("render boom")

func (r *failingRenderer) Render(ctx context.Context, page string) (string, error) {
	defer func() { r.calls++ }()
	if r.calls == r.failOn {
		return "", errRender
	}
	return "<p>" + page + "</p>", nil
}

// newTestEngine builds an Engine backed by a fakeOpener.
func newTestEngine(t *testing.T, opener *fakeOpener, opts ...Option) *Engine {
	t.Helper()
	if opener.png == nil {
		opener.png = testPNG(t, 42, 60)
	}
	e, err := NewEngine(append([]Option{withSurfaceOpener(opener)}, opts...)...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func mustParse(t *testing.T, e *Engine, text string, size PageSize) *Document {
	t.Helper()
	doc, err := e.Parse(context.Background(), text, size)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}
