package pagedoc

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alnah/go-pagedoc/internal/fileutil"
	"github.com/alnah/go-pagedoc/internal/pipeline"
)

// pageRenderer converts one page of Markdown to HTML.
type pageRenderer = pipeline.PageRenderer

// Compile-time interface implementation checks.
var (
	_ pageRenderer  = (*pipeline.Renderer)(nil)
	_ surfaceOpener = (*rodSurfaceOpener)(nil)
)

// Engine parses text into paginated documents and exports them as PDF.
// Create with NewEngine, and Close when done to release the browser.
//
// Parse is safe for concurrent use. An Engine runs at most one export at a
// time; use EnginePool for parallel exports.
type Engine struct {
	cfg               engineConfig
	assetLoader       AssetLoader
	publicAssetLoader AssetLoader // from WithAssetLoader
	renderer          pageRenderer
	surfaces          surfaceOpener

	pageCSS string // highlight, base typography and user CSS
	script  string // preview scale controller

	mu    sync.Mutex
	state ExportState
}

// NewEngine creates an Engine with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle).
// Returns error if assets cannot be loaded.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:      engineConfig{timeout: defaultTimeout},
		renderer: pipeline.NewRenderer(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.publicAssetLoader != nil {
		e.assetLoader = e.publicAssetLoader
	} else {
		loader, err := NewAssetLoader(e.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		e.assetLoader = loader
	}

	if err := e.loadAssets(); err != nil {
		return nil, err
	}

	// Create browser surface if not injected (e.g., by tests)
	if e.surfaces == nil {
		e.surfaces = newRodSurfaceOpener(e.cfg.timeout)
	}

	return e, nil
}

// loadAssets builds the CSS appended after the page geometry rules and
// loads the scale script. Order: highlight, base typography, user style.
func (e *Engine) loadAssets() error {
	highlight, err := pipeline.HighlightCSS()
	if err != nil {
		return err
	}
	base, err := e.assetLoader.LoadStyle(DefaultStyle)
	if err != nil {
		return fmt.Errorf("loading base style: %w", err)
	}
	script, err := e.assetLoader.LoadScript(DefaultScript)
	if err != nil {
		return fmt.Errorf("loading scale script: %w", err)
	}
	user, err := e.resolveStyle()
	if err != nil {
		return err
	}

	parts := []string{highlight, base}
	if user != "" {
		parts = append(parts, user)
	}
	e.pageCSS = strings.Join(parts, "\n")
	e.script = script
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (e *Engine) resolveStyle() (string, error) {
	input := e.cfg.styleInput
	if input == "" {
		return "", nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		return input, nil
	}

	css, err := e.assetLoader.LoadStyle(input)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", input, err)
	}
	return css, nil
}

// Parse splits text into pages, renders each page independently and
// assembles the paginated document for size. The result is immutable.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Engine) Parse(ctx context.Context, text string, size PageSize) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := size.Validate(); err != nil {
		return nil, err
	}

	sources := pipeline.SplitPages(text)
	pages := make([]ParsedPage, len(sources))
	fragments := make([]string, len(sources))
	for i, src := range sources {
		fragment, err := e.renderer.Render(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
		}
		pages[i] = ParsedPage{Index: i, Markdown: src, HTML: fragment}
		fragments[i] = fragment
	}

	geometry := size.geometry()
	css := pipeline.BuildStylesheet(geometry) + "\n" + e.pageCSS
	title := documentTitle(sources)

	htmlDoc, err := pipeline.Assemble(pipeline.AssembleInput{
		Title:    title,
		Pages:    fragments,
		Geometry: geometry,
		CSS:      css,
		Script:   e.script,
	})
	if err != nil {
		return nil, err
	}

	return &Document{
		Title:    title,
		Pages:    pages,
		PageSize: size,
		CSS:      css,
		HTML:     htmlDoc,
	}, nil
}

// Render is Parse returning only the assembled HTML document.
func (e *Engine) Render(ctx context.Context, text string, size PageSize) (string, error) {
	doc, err := e.Parse(ctx, text, size)
	if err != nil {
		return "", err
	}
	return doc.HTML, nil
}

// State returns the current export state.
func (e *Engine) State() ExportState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Close releases resources (headless Chrome browser).
func (e *Engine) Close() error {
	if e.surfaces != nil {
		return e.surfaces.Close()
	}
	return nil
}

// documentTitle returns the first level-one heading, searching pages in
// order, or pipeline.DefaultTitle.
func documentTitle(pages []string) string {
	for _, page := range pages {
		if title := pipeline.FirstHeading(page); title != "" {
			return title
		}
	}
	return pipeline.DefaultTitle
}
