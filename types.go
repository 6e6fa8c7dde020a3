package pagedoc

import (
	"context"
	"time"
)

// Default timeout for loading the export surface.
const defaultTimeout = 30 * time.Second

// DefaultFilename is the export file name when none is given.
const DefaultFilename = "document"

// PDFExtension is appended to every exported file name.
const PDFExtension = ".pdf"

// RasterScale is the device pixel ratio used for page captures.
const RasterScale = 2

// ParsedPage is one page of a parsed document.
type ParsedPage struct {
	Index    int    `json:"index"` // zero-based position in the document
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// Document is the result of parsing source text at a page size.
// It is recomputed on every change and never mutated after Parse returns.
type Document struct {
	Title    string       `json:"title"`
	Pages    []ParsedPage `json:"pages"`
	PageSize PageSize     `json:"pageSize"`
	CSS      string       `json:"css"`
	HTML     string       `json:"-"` // complete paginated document
}

// PageCount returns the number of pages, zero for a nil document.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// CompleteFunc receives the finished PDF and its file name.
type CompleteFunc func(ctx context.Context, pdf []byte, filename string) error

// ProgressFunc is called after each page is added to the PDF.
type ProgressFunc func(done, total int)

// ExportOptions configures a single export.
type ExportOptions struct {
	// Filename without extension. Empty means DefaultFilename.
	Filename string

	// OnComplete, if set, receives the PDF. A returned error is reported as
	// ErrCallback, but the result is still returned.
	OnComplete CompleteFunc

	OnProgress ProgressFunc
}

// filename returns the output file name with extension.
func (o ExportOptions) filename() string {
	name := o.Filename
	if name == "" {
		name = DefaultFilename
	}
	return name + PDFExtension
}

// ExportResult is the outcome of a successful export.
type ExportResult struct {
	PDF      []byte
	Filename string
	Pages    int
}

// ExportState is the transient export status of an Engine.
type ExportState struct {
	Exporting bool
	Err       error // error of the last finished export, if any
}

// engineConfig holds configuration applied by options.
type engineConfig struct {
	timeout    time.Duration
	styleInput string // name, path, or CSS content
	assetPath  string
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the page load timeout of the export surface.
// Panics if d <= 0 (programmer error).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pagedoc: WithTimeout duration must be positive")
	}
	return func(e *Engine) {
		e.cfg.timeout = d
	}
}

// WithStyle appends user CSS after the built-in styles. The value may be a
// style name resolved by the asset loader, a file path, or CSS content.
func WithStyle(style string) Option {
	return func(e *Engine) {
		e.cfg.styleInput = style
	}
}

// WithAssetPath loads styles and scripts from a directory, falling back to
// embedded assets for anything it does not provide.
func WithAssetPath(path string) Option {
	return func(e *Engine) {
		e.cfg.assetPath = path
	}
}

// WithAssetLoader uses a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(e *Engine) {
		e.publicAssetLoader = loader
	}
}

// withSurfaceOpener replaces the browser-backed surface.
func withSurfaceOpener(o surfaceOpener) Option {
	return func(e *Engine) {
		e.surfaces = o
	}
}

// withRenderer replaces the page renderer.
func withRenderer(r pageRenderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}
