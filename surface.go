package pagedoc

import "context"

// surfaceOpener provides live rendering surfaces for assembled documents.
// The underlying capability (a browser) is acquired lazily by the first Open
// and kept until Close.
type surfaceOpener interface {
	Open(ctx context.Context, doc *Document) (surface, error)
	Close() error
}

// surface is a loaded, isolated rendering of one document, laid out at its
// unscaled print geometry.
type surface interface {
	// Pages returns the physical page boxes in document order.
	Pages(ctx context.Context) ([]pageElement, error)
	Close() error
}

// pageElement is one physical page box of a surface.
type pageElement interface {
	// Capture rasterizes the page box to PNG on an opaque background.
	Capture(ctx context.Context) ([]byte, error)
}
