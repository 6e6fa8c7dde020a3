package pagedoc

import (
	"errors"

	"github.com/alnah/go-pagedoc/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Export errors.
	ErrSurfaceUnavailable = errors.New("rendering surface unavailable")
	ErrNoPages            = errors.New("document has no pages to export")
	ErrCapture            = errors.New("page capture failed")
	ErrCallback           = errors.New("export completion callback failed")
	ErrExportInProgress   = errors.New("export already in progress")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageLoad           = errors.New("failed to load page")
	ErrPDFAssembly        = errors.New("PDF assembly failed")
	ErrNilDocument        = errors.New("document cannot be nil")

	// Page size validation errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")
	ErrUnknownPreset   = errors.New("unknown page size preset")

	// Rendering errors.
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// Inspection errors.
	ErrPDFRead = errors.New("failed to read PDF")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
