package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pagedoc <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Export markdown files to raster PDF, one image per page")
	fmt.Fprintln(w, "  render     Write the paginated HTML document")
	fmt.Fprintln(w, "  serve      Run the preview server")
	fmt.Fprintln(w, "  inspect    Show page count and page sizes of a PDF")
	fmt.Fprintln(w, "  presets    List page size presets")
	fmt.Fprintln(w, "  doctor     Check system configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page breaks: a line containing exactly ---page---, or a form feed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pagedoc help <command>' for details on a specific command.")
}

func printPageFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Preset (a3, a4, a5, b5, letter, legal) or WIDTHxHEIGHT mm")
	fmt.Fprintln(w, "      --width <mm>          Page width (with --height)")
	fmt.Fprintln(w, "      --height <mm>         Page height (with --width)")
	fmt.Fprintln(w, "      --margin <mm>         Page margin (0-100, default 20)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Extra CSS: style name, file path or inline CSS")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
}

func printCommonFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pagedoc export <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export markdown files to PDF. Each page is captured as an image and")
	fmt.Fprintln(w, "placed on a PDF page of the same physical size.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "      --filename <s>        PDF file name without extension (default \"document\")")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --html                Also write the paginated HTML document")
	fmt.Fprintln(w)
	printPageFlagsUsage(w)
	printCommonFlagsUsage(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pagedoc render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the paginated HTML document of a markdown file. No browser needed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file or directory (default: stdout)")
	fmt.Fprintln(w)
	printPageFlagsUsage(w)
	printCommonFlagsUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pagedoc serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the preview server.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  GET  /health              Liveness")
	fmt.Fprintln(w, "  GET  /api/presets         Page size presets")
	fmt.Fprintln(w, "  GET  /api/editor          Editor options")
	fmt.Fprintln(w, "  POST /api/render          Paginated document (?format=json|html|frame)")
	fmt.Fprintln(w, "  POST /api/export          PDF download")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout for exports")
	fmt.Fprintln(w)
	printPageFlagsUsage(w)
	printCommonFlagsUsage(w)
}

func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pagedoc inspect <file.pdf> [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the page count and each page's size in millimeters.")
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pagedoc doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check browser, environment and engine readiness.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "presets":
		fmt.Fprintln(env.Stdout, "Usage: pagedoc presets")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List page size presets.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pagedoc version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pagedoc help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
