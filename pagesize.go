package pagedoc

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-pagedoc/internal/pipeline"
)

// Page size bounds in millimeters.
const (
	MinPageDimension = 50.0
	MaxPageDimension = 1000.0
	MaxMargin        = 100.0

	// DefaultMargin is applied to presets when no margin is given.
	DefaultMargin = 20.0

	// DefaultPreset is the page size used when none is configured.
	DefaultPreset = "a4"
)

// Orientation values.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// PageSize is the physical page box in millimeters. A square page is portrait.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// presetSizes holds portrait dimensions in millimeters.
var presetSizes = map[string]PageSize{
	"a3":     {Width: 297, Height: 420},
	"a4":     {Width: 210, Height: 297},
	"a5":     {Width: 148, Height: 210},
	"b5":     {Width: 176, Height: 250},
	"letter": {Width: 215.9, Height: 279.4},
	"legal":  {Width: 215.9, Height: 355.6},
}

// Preset is a named page size.
type Preset struct {
	Name     string   `json:"name"`
	PageSize PageSize `json:"pageSize"`
}

// Presets returns all named page sizes with the default margin, sorted by name.
func Presets() []Preset {
	names := PresetNames()
	out := make([]Preset, len(names))
	for i, name := range names {
		size := presetSizes[name]
		size.Margin = DefaultMargin
		out[i] = Preset{Name: name, PageSize: size}
	}
	return out
}

// PresetNames returns the preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presetSizes))
	for name := range presetSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetPageSize returns the named preset with the given margin.
// Names are case-insensitive.
func PresetPageSize(name string, margin float64) (PageSize, error) {
	size, ok := presetSizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PageSize{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	size.Margin = margin
	return size, size.Validate()
}

// DefaultPageSize returns A4 portrait with the default margin.
func DefaultPageSize() PageSize {
	size := presetSizes[DefaultPreset]
	size.Margin = DefaultMargin
	return size
}

// ParsePageSize accepts a preset name ("a4", "Letter") or explicit
// dimensions in millimeters ("210x297", "210 x 297mm").
func ParsePageSize(s string, margin float64) (PageSize, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := presetSizes[s]; ok {
		return PresetPageSize(s, margin)
	}

	w, h, found := strings.Cut(strings.TrimSuffix(s, "mm"), "x")
	if !found {
		return PageSize{}, fmt.Errorf("%w: %q (want a preset or WIDTHxHEIGHT)", ErrUnknownPreset, s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return PageSize{}, fmt.Errorf("%w: width %q: %v", ErrInvalidPageSize, w, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return PageSize{}, fmt.Errorf("%w: height %q: %v", ErrInvalidPageSize, h, err)
	}

	size := PageSize{Width: width, Height: height, Margin: margin}
	return size, size.Validate()
}

// Validate checks dimensions and margin against the supported bounds.
// The margins must leave a non-empty content box.
func (p PageSize) Validate() error {
	if !inRange(p.Width, MinPageDimension, MaxPageDimension) {
		return fmt.Errorf("%w: width %vmm (must be %v-%vmm)", ErrInvalidPageSize, p.Width, MinPageDimension, MaxPageDimension)
	}
	if !inRange(p.Height, MinPageDimension, MaxPageDimension) {
		return fmt.Errorf("%w: height %vmm (must be %v-%vmm)", ErrInvalidPageSize, p.Height, MinPageDimension, MaxPageDimension)
	}
	if !inRange(p.Margin, 0, MaxMargin) {
		return fmt.Errorf("%w: %vmm (must be 0-%vmm)", ErrInvalidMargin, p.Margin, MaxMargin)
	}
	if 2*p.Margin >= math.Min(p.Width, p.Height) {
		return fmt.Errorf("%w: %vmm leaves no content area on a %vx%vmm page", ErrInvalidMargin, p.Margin, p.Width, p.Height)
	}
	return nil
}

// inRange is false for NaN.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// Orientation reports landscape when the page is wider than tall.
func (p PageSize) Orientation() string {
	if p.Width > p.Height {
		return OrientationLandscape
	}
	return OrientationPortrait
}

// Landscape returns the page with its longer side horizontal.
func (p PageSize) Landscape() PageSize {
	if p.Width < p.Height {
		p.Width, p.Height = p.Height, p.Width
	}
	return p
}

// ContentWidth returns the width inside the margins.
func (p PageSize) ContentWidth() float64 {
	return p.geometry().ContentWidth()
}

// ContentHeight returns the height inside the margins.
func (p PageSize) ContentHeight() float64 {
	return p.geometry().ContentHeight()
}

// String formats the page size as "210x297mm, margin 20mm".
func (p PageSize) String() string {
	return fmt.Sprintf("%sx%smm, margin %smm", formatMM(p.Width), formatMM(p.Height), formatMM(p.Margin))
}

func (p PageSize) geometry() pipeline.Geometry {
	return pipeline.Geometry{Width: p.Width, Height: p.Height, Margin: p.Margin}
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
