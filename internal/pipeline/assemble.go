package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strconv"
	"strings"
)

// ErrAssemble indicates the document shell could not be rendered.
var ErrAssemble = errors.New("document assembly failed")

// DefaultTitle is used when a document has no title.
const DefaultTitle = "Document"

// documentTemplate is the shell of every assembled document. Each page is a
// full-size .page box wrapped in a .page-frame that reserves the scaled
// footprint on screen.
const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body data-page-width-mm="{{.PageWidth}}" data-page-height-mm="{{.PageHeight}}">
{{- range .Pages}}
<div class="` + PageFrameClass + `" data-page-number="{{.Number}}">
<section class="` + PageClass + `{{if .Last}} ` + LastPageClass + `{{end}}" data-page-index="{{.Index}}">
<div class="` + PageContentClass + `">
{{.HTML}}
</div>
</section>
</div>
{{- end}}
<script>{{.Script}}</script>
</body>
</html>
`

var shell = template.Must(template.New("document").Parse(documentTemplate))

// AssembleInput holds everything placed in the document shell.
type AssembleInput struct {
	Title    string
	Pages    []string // rendered page HTML, in page order
	Geometry Geometry
	CSS      string
	Script   string
}

type pageView struct {
	Index  int
	Number int
	Last   bool
	HTML   template.HTML
}

type documentView struct {
	Title      string
	CSS        template.CSS
	Script     template.JS
	PageWidth  string
	PageHeight string
	Pages      []pageView
}

// Assemble renders the complete document: stylesheet, one wrapped page box
// per rendered page (the last flagged for break suppression) and the preview
// scale script. Page HTML must already be sanitized.
func Assemble(in AssembleInput) (string, error) {
	title := in.Title
	if title == "" {
		title = DefaultTitle
	}

	// #nosec G203 -- style closers escaped, script is an embedded asset
	css, script := template.CSS(sanitizeCSS(in.CSS)), template.JS(sanitizeCSS(in.Script))

	view := documentView{
		Title:      title,
		CSS:        css,
		Script:     script,
		PageWidth:  strconv.FormatFloat(roundMM(in.Geometry.Width), 'f', -1, 64),
		PageHeight: strconv.FormatFloat(roundMM(in.Geometry.Height), 'f', -1, 64),
		Pages:      make([]pageView, len(in.Pages)),
	}
	for i, h := range in.Pages {
		view.Pages[i] = pageView{
			Index:  i,
			Number: i + 1,
			Last:   i == len(in.Pages)-1,
			HTML:   template.HTML(h), // #nosec G203 -- sanitized by Renderer
		}
	}

	var buf bytes.Buffer
	if err := shell.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssemble, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes "</" so embedded CSS or JS cannot close its element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// SandboxFrame embeds a document in a sandboxed iframe. Scripts may run (the
// scale controller needs them) but the frame has an opaque origin, so host
// styles and scripts cannot reach it and it cannot reach the host.
func SandboxFrame(document string) string {
	return `<iframe class="pagedoc-surface" title="Document preview" sandbox="allow-scripts" srcdoc="` +
		html.EscapeString(document) + `"></iframe>`
}
