package pipeline

import "math"

// MMToPx converts millimeters to CSS reference pixels (96 px per inch).
// Used only for the preview scale; stylesheet lengths stay in millimeters.
const MMToPx = 96 / 25.4

// PreviewPadding is the horizontal allowance, in CSS pixels, subtracted from
// the surface width before fitting a page.
const PreviewPadding = 32

// MinPreviewScale keeps a page visible when the surface is narrower than the
// padding allowance.
const MinPreviewScale = 0.05

// PreviewScale returns the fit-to-width factor for a page of pageWidthMM shown
// in a surface availableWidth CSS pixels wide (padding not yet subtracted).
// The result never exceeds 1 and never increases as the surface narrows.
// It mirrors the computation done by the embedded scale script.
func PreviewScale(availableWidth, pageWidthMM float64) float64 {
	pageWidthPx := pageWidthMM * MMToPx
	if pageWidthPx <= 0 {
		return 1
	}
	scale := math.Min((availableWidth-PreviewPadding)/pageWidthPx, 1)
	if scale < MinPreviewScale || math.IsNaN(scale) {
		return MinPreviewScale
	}
	return scale
}

// PixelSize converts a length in millimeters to whole CSS pixels, rounding up
// so a viewport of that size always contains the page box.
func PixelSize(lengthMM float64) int {
	return int(math.Ceil(math.Round(lengthMM*MMToPx*1e4) / 1e4))
}
