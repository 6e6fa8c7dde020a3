// Package pipeline implements the text-to-paginated-document stages.
//
// The stages run in a fixed order and are pure functions of their input:
//   - page splitting on `---page---` lines and form feeds (SplitPages)
//   - per-page Markdown to sanitized HTML via Goldmark and bluemonday (Renderer)
//   - page geometry stylesheet generation (BuildStylesheet)
//   - document assembly with the embedded preview scale script (Assemble)
//
// Rasterization and PDF assembly are handled by the root pagedoc package,
// which drives a headless Chrome surface loaded with the assembled document.
// Keeping this package browser-free means every stage can be tested and used
// for preview without launching Chrome.
package pipeline
