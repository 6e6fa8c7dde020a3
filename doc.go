// Package pagedoc turns Markdown with explicit page breaks into a paginated,
// print-accurate HTML document and exports it as a PDF built from per-page
// raster captures.
//
// # Quick Start
//
// Create an engine, parse text at a page size, export, and close when done:
//
//	engine, err := pagedoc.NewEngine()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	doc, err := engine.Parse(ctx, "# Hello\n---page---\nWorld", pagedoc.DefaultPageSize())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := engine.Export(ctx, doc, pagedoc.ExportOptions{Filename: "hello"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.PDF, 0644)
//
// # Page Breaks
//
// A line consisting exactly of ---page--- or a form feed character anywhere
// starts a new page. The first page is always kept, even when empty; later
// pages that contain only whitespace are dropped. Nothing reflows across a
// page boundary: each page is rendered on its own.
//
// # Page Geometry
//
// Page sizes are in millimeters, either a preset (PresetPageSize, ParsePageSize)
// or explicit dimensions. The same millimeter values drive the screen preview,
// where each page is scaled to fit the surface width, and the export, where
// pages are captured unscaled.
//
// # Export
//
// Export opens the document in headless Chrome, captures every page box in
// order at RasterScale, and places each capture full-bleed on its own PDF
// page. Text in the PDF is rasterized. One export runs per Engine at a time;
// use EnginePool for batch work:
//
//	pool := pagedoc.NewEnginePool(4)
//	defer pool.Close()
//
//	engine := pool.Acquire()
//	defer pool.Release(engine)
//
// InspectPDF reads an exported file back for page count and page sizes.
//
// # Browser Requirements
//
// Export requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package pagedoc
