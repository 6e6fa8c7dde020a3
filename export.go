package pagedoc

import (
	"context"
	"fmt"
)

// Export captures every page of doc, in order, and assembles the captures
// into a PDF whose pages match doc.PageSize one to one.
//
// Only one export runs at a time: a concurrent call fails immediately with
// ErrExportInProgress and leaves the running export untouched. If
// opts.OnComplete fails, the result is returned together with an error
// wrapping ErrCallback. Any capture failure aborts the export without a
// partial PDF. The outcome is recorded in State.
func (e *Engine) Export(ctx context.Context, doc *Document, opts ExportOptions) (result *ExportResult, err error) {
	if !e.beginExport() {
		return nil, ErrExportInProgress
	}
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("internal error: %v", r)
		}
		e.endExport(err)
	}()

	if doc == nil {
		return nil, ErrNilDocument
	}
	if err := doc.PageSize.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	surf, err := e.surfaces.Open(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	defer func() { _ = surf.Close() }()

	pages, err := surf.Pages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	blob, err := capturePages(ctx, pages, doc.PageSize, opts.OnProgress)
	if err != nil {
		return nil, err
	}

	result = &ExportResult{PDF: blob, Filename: opts.filename(), Pages: len(pages)}
	if opts.OnComplete != nil {
		if cbErr := opts.OnComplete(ctx, blob, result.Filename); cbErr != nil {
			return result, fmt.Errorf("%w: %w", ErrCallback, cbErr)
		}
	}
	return result, nil
}

// capturePages folds the pages into one PDF, strictly in order: page i is
// captured and embedded before page i+1 is touched.
func capturePages(ctx context.Context, pages []pageElement, size PageSize, progress ProgressFunc) ([]byte, error) {
	out := newPDFDocument(size)
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		png, err := page.Capture(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrCapture, i+1, err)
		}
		if err := out.addPage(png); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(i+1, len(pages))
		}
	}
	return out.bytes()
}

// beginExport sets the busy flag, or reports false if it is already set.
func (e *Engine) beginExport() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Exporting {
		return false
	}
	e.state = ExportState{Exporting: true}
	return true
}

// endExport clears the busy flag and records the outcome.
func (e *Engine) endExport(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = ExportState{Exporting: false, Err: err}
}
