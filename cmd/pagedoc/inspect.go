package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/alnah/go-pagedoc"
)

// inspectPage is one page of inspect output.
type inspectPage struct {
	Number      int     `json:"number"`
	WidthMM     float64 `json:"widthMm"`
	HeightMM    float64 `json:"heightMm"`
	Orientation string  `json:"orientation"`
}

// inspectResult is the JSON form of inspect output.
type inspectResult struct {
	File  string        `json:"file"`
	Pages int           `json:"pages"`
	Sizes []inspectPage `json:"sizes"`
}

// runInspect prints page count and per-page size of a PDF.
func runInspect(args []string, env *Environment) error {
	jsonOutput, positional, err := parseJSONFlag("inspect", args, env, func() { printInspectUsage(env.Stderr) })
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	path := positional[0]

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadPDF, err)
	}
	info, err := pagedoc.InspectPDF(data)
	if err != nil {
		return err
	}

	result := inspectResult{File: path, Pages: info.PageCount()}
	for i, box := range info.Pages {
		size := pagedoc.PageSize{Width: box.Width, Height: box.Height}
		result.Sizes = append(result.Sizes, inspectPage{
			Number:      i + 1,
			WidthMM:     roundTenth(box.Width),
			HeightMM:    roundTenth(box.Height),
			Orientation: size.Orientation(),
		})
	}

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(env.Stdout, "%s: %d page(s)\n", result.File, result.Pages)
	for _, p := range result.Sizes {
		fmt.Fprintf(env.Stdout, "  %3d  %.1f x %.1f mm  %s\n", p.Number, p.WidthMM, p.HeightMM, p.Orientation)
	}
	return nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
