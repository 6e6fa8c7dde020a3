package pagedoc

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-pagedoc/internal/fileutil"
	"github.com/alnah/go-pagedoc/internal/pipeline"
	"github.com/alnah/go-pagedoc/internal/process"
)

// rodSurfaceOpener opens each document in a fresh headless Chrome tab.
// Rod automatically downloads Chromium on first run if not found.
type rodSurfaceOpener struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newRodSurfaceOpener(timeout time.Duration) *rodSurfaceOpener {
	return &rodSurfaceOpener{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (o *rodSurfaceOpener) ensureBrowser() (*rod.Browser, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.browser != nil {
		return o.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	o.browser = browser
	o.launcher = l
	return browser, nil
}

// Open writes the document to a temporary file and loads it in a new tab
// with print media emulated, so page boxes are laid out unscaled. The
// viewport matches one page at RasterScale.
func (o *rodSurfaceOpener) Open(ctx context.Context, doc *Document) (surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := o.ensureBrowser()
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(doc.HTML, "html")
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	s := &rodSurface{page: page, cleanup: cleanup}

	if err := s.prepare(doc.PageSize); err != nil {
		_ = s.Close()
		return nil, err
	}

	// Wait for page to load with timeout from context or default
	timeout := o.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			_ = s.Close()
			return nil, context.DeadlineExceeded
		}
	}

	p := page.Context(ctx).Timeout(timeout)
	if err := p.Navigate("file://" + path); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := p.WaitLoad(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	return s, nil
}

// Close releases browser resources and kills the browser process tree.
func (o *rodSurfaceOpener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var err error
	if o.browser != nil {
		err = o.browser.Close()
		o.browser = nil
	}
	if o.launcher != nil {
		// Best-effort; launcher.Kill covers the main process
		_ = process.KillProcessGroup(o.launcher.PID())
		o.launcher.Kill()
		o.launcher = nil
	}
	return err
}

// rodSurface is one loaded tab.
type rodSurface struct {
	page    *rod.Page
	cleanup func()
}

// prepare switches the tab to print media and sizes the viewport to one page.
func (s *rodSurface) prepare(size PageSize) error {
	if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(s.page); err != nil {
		return fmt.Errorf("%w: emulating print media: %v", ErrPageLoad, err)
	}
	err := s.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             pipeline.PixelSize(size.Width),
		Height:            pipeline.PixelSize(size.Height),
		DeviceScaleFactor: RasterScale,
	})
	if err != nil {
		return fmt.Errorf("%w: setting viewport: %v", ErrPageLoad, err)
	}
	return nil
}

func (s *rodSurface) Pages(ctx context.Context) ([]pageElement, error) {
	els, err := s.page.Context(ctx).Elements(pipeline.PageSelector)
	if err != nil {
		return nil, err
	}
	pages := make([]pageElement, len(els))
	for i, el := range els {
		pages[i] = &rodPage{page: s.page, el: el}
	}
	return pages, nil
}

// Close closes the tab and removes the backing file.
func (s *rodSurface) Close() error {
	err := s.page.Close()
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
	return err
}

type rodPage struct {
	page *rod.Page
	el   *rod.Element
}

// pageBoxJS returns the element box in document CSS pixels.
const pageBoxJS = `function() {
	const r = this.getBoundingClientRect();
	return {x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height};
}`

// Capture screenshots the page box at the viewport's device scale factor.
// The clip is in document coordinates, so pages below the fold are captured
// without scrolling. Pages have an opaque white background.
func (p *rodPage) Capture(ctx context.Context) ([]byte, error) {
	res, err := p.el.Context(ctx).Eval(pageBoxJS)
	if err != nil {
		return nil, fmt.Errorf("measuring page box: %w", err)
	}
	box := &proto.DOMRect{
		X:      res.Value.Get("x").Num(),
		Y:      res.Value.Get("y").Num(),
		Width:  res.Value.Get("width").Num(),
		Height: res.Value.Get("height").Num(),
	}
	if box.Width <= 0 || box.Height <= 0 {
		return nil, fmt.Errorf("empty page box %vx%v", box.Width, box.Height)
	}

	shot, err := proto.PageCaptureScreenshot{
		Format:                proto.PageCaptureScreenshotFormatPng,
		Clip:                  captureClip(box, 1),
		FromSurface:           true,
		CaptureBeyondViewport: true,
	}.Call(p.page.Context(ctx))
	if err != nil {
		return nil, err
	}
	return shot.Data, nil
}

// captureClip converts a CSS-pixel box into a screenshot clip. scale is
// applied on top of the device scale factor, so 1 keeps the output at
// RasterScale device pixels per CSS pixel.
func captureClip(box *proto.DOMRect, scale float64) *proto.PageViewport {
	return &proto.PageViewport{
		X:      box.X,
		Y:      box.Y,
		Width:  box.Width,
		Height: box.Height,
		Scale:  scale,
	}
}

var (
	_ surface     = (*rodSurface)(nil)
	_ pageElement = (*rodPage)(nil)
)
