package pipeline

import (
	"regexp"
	"strings"
)

// Page delimiters. Both forms are interchangeable within one document.
const (
	PageDelimiter = "---page---"
	FormFeed      = "\f"
)

var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// The delimiter consumes only its own line, so surrounding newlines stay
	// with the neighbouring pages: "A\n---page---\nB" -> "A\n", "\nB".
	delimiterLine = regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(PageDelimiter) + `$`)
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// SplitPages segments text into ordered page contents.
//
// The first segment is always kept, even when empty, so any input yields at
// least one page. Later segments are kept only if they contain non-whitespace,
// which means a trailing delimiter never produces a blank page.
func SplitPages(text string) []string {
	text = NormalizeLineEndings(text)

	var segments []string
	for _, part := range strings.Split(text, FormFeed) {
		segments = append(segments, delimiterLine.Split(part, -1)...)
	}

	pages := make([]string, 0, len(segments))
	pages = append(pages, segments[0])
	for _, seg := range segments[1:] {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		pages = append(pages, seg)
	}
	return pages
}
