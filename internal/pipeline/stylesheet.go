package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Geometry is the physical page box in millimeters.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
}

// ContentWidth returns the width left inside the margins.
func (g Geometry) ContentWidth() float64 {
	return roundMM(g.Width - 2*g.Margin)
}

// ContentHeight returns the height left inside the margins.
func (g Geometry) ContentHeight() float64 {
	return roundMM(g.Height - 2*g.Margin)
}

// Class names shared by the stylesheet, the assembler and the export surface.
const (
	PageClass        = "page"
	LastPageClass    = "page-last"
	PageFrameClass   = "page-frame"
	PageContentClass = "page-content"

	// PageSelector matches every physical page box in an assembled document.
	PageSelector = "." + PageClass

	// PreviewScaleProperty is the custom property written by the scale script
	// and read by the screen transform.
	PreviewScaleProperty = "--preview-scale"
)

// roundMM trims float noise such as 165.10000000000002 to a stable value.
func roundMM(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// mm formats a length in millimeters using the shortest exact notation.
func mm(v float64) string {
	return strconv.FormatFloat(roundMM(v), 'f', -1, 64) + "mm"
}

// BuildStylesheet generates the page geometry rules for g.
//
// Physical lengths stay in millimeters in every rule so the browser's own
// unit conversion is the single authority for both preview and print. Three
// rule sets are active at once: base/print geometry, screen preview scaling,
// and print-only overrides.
func BuildStylesheet(g Geometry) string {
	var buf strings.Builder

	w, h, m := mm(g.Width), mm(g.Height), mm(g.Margin)

	fmt.Fprintf(&buf, `
/* Page geometry */
@page {
  size: %s %s;
  margin: 0;
}
html, body {
  margin: 0;
  padding: 0;
  background: #fff;
}
.%s {
  box-sizing: border-box;
  width: %s;
  height: %s;
  padding: %s;
  overflow: hidden;
  position: relative;
  background: #fff;
  break-after: page;
  page-break-after: always;
}
.%s.%s {
  break-after: auto;
  page-break-after: auto;
}
.%s {
  width: %s;
  height: %s;
  overflow: hidden;
}
`, w, h,
		PageClass, w, h, m,
		PageClass, LastPageClass,
		PageContentClass, mm(g.ContentWidth()), mm(g.ContentHeight()))

	buf.WriteString(`
/* Page breaks: keep headings with the text that follows */
h1, h2, h3, h4, h5, h6 {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}
`)

	fmt.Fprintf(&buf, `
/* Screen preview: full-size page box, scaled footprint */
@media screen {
  :root {
    %s: 1;
  }
  body {
    background: #e5e5e5;
    padding: 16px 0;
  }
  .%s {
    position: relative;
    width: calc(%s * var(%s));
    height: calc(%s * var(%s));
    margin: 0 auto 16px;
  }
  .%s > .%s {
    transform: scale(var(%s));
    transform-origin: top left;
    box-shadow: 0 1px 4px rgba(0, 0, 0, 0.25);
  }
  .%s::after {
    content: attr(data-page-number);
    position: absolute;
    right: 6px;
    bottom: 6px;
    padding: 1px 6px;
    border-radius: 3px;
    font: 11px/1.4 sans-serif;
    color: #fff;
    background: rgba(0, 0, 0, 0.45);
    pointer-events: none;
  }
}
`, PreviewScaleProperty,
		PageFrameClass, w, PreviewScaleProperty, h, PreviewScaleProperty,
		PageFrameClass, PageClass, PreviewScaleProperty,
		PageFrameClass)

	fmt.Fprintf(&buf, `
/* Print: unscaled page boxes, no preview chrome */
@media print {
  .%s {
    display: contents;
  }
  .%s::after {
    content: none;
  }
  .%s {
    transform: none;
    box-shadow: none;
  }
}
`, PageFrameClass, PageFrameClass, PageClass)

	return buf.String()
}
