package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page geometry flags. The *Set fields record whether the
// flag was given, since 0 is a valid margin.
type pageFlags struct {
	size      string
	width     float64
	height    float64
	margin    float64
	marginSet bool
}

// assetFlags holds style and asset directory flags.
type assetFlags struct {
	style     string
	assetPath string
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common   commonFlags
	page     pageFlags
	assets   assetFlags
	output   string
	filename string
	workers  int
	timeout  string
	html     bool
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common commonFlags
	page   pageFlags
	assets assetFlags
	output string
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common  commonFlags
	page    pageFlags
	assets  assetFlags
	addr    string
	timeout string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page geometry flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "preset name or WIDTHxHEIGHT in mm")
	fs.Float64Var(&f.width, "width", 0, "page width in mm (with --height)")
	fs.Float64Var(&f.height, "height", 0, "page height in mm (with --width)")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in mm")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name, file path or inline CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// finishPageFlags records which page flags were explicitly set.
func finishPageFlags(fs *flag.FlagSet, f *pageFlags) {
	f.marginSet = fs.Changed("margin")
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, env *Environment) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.filename, "filename", "", "PDF file name without extension (single input)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.html, "html", false, "also write the paginated HTML document")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printExportUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	finishPageFlags(fs, &f.page)

	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, env *Environment) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default: stdout)")
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printRenderUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	finishPageFlags(fs, &f.page)

	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, env *Environment) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &serveFlags{}

	fs.StringVar(&f.addr, "addr", "", "listen address (default :8080)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout for exports")
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printServeUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	finishPageFlags(fs, &f.page)

	return f, fs.Args(), nil
}

// parseJSONFlag parses commands whose only flag is --json.
func parseJSONFlag(name string, args []string, env *Environment, usage func()) (bool, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var jsonOutput bool
	fs.BoolVar(&jsonOutput, "json", false, "machine-readable JSON output")
	fs.Usage = usage

	if err := fs.Parse(args); err != nil {
		return false, nil, err
	}
	return jsonOutput, fs.Args(), nil
}
