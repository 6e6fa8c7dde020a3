package main

import (
	"fmt"

	"github.com/alnah/go-pagedoc"
)

// runPresets lists the named page sizes.
func runPresets(env *Environment) {
	fmt.Fprintf(env.Stdout, "Page presets (margin defaults to %vmm):\n", pagedoc.DefaultMargin)
	for _, p := range pagedoc.Presets() {
		marker := ""
		if p.Name == pagedoc.DefaultPreset {
			marker = " (default)"
		}
		fmt.Fprintf(env.Stdout, "  %-8s %6.1f x %6.1f mm%s\n", p.Name, p.PageSize.Width, p.PageSize.Height, marker)
	}
	fmt.Fprintln(env.Stdout)
	fmt.Fprintf(env.Stdout, "Custom sizes: WIDTHxHEIGHT in mm, each %v-%vmm (e.g. 300x120)\n",
		pagedoc.MinPageDimension, pagedoc.MaxPageDimension)
}
