package render

import (
	"strings"

	"github.com/walteh/semco/pkg/semtok"
)

var (
	htmlEscaper      = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	htmlQuoteEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#x27;")
)

// HTML writes inline styled spans.
type HTML struct {
	Styles map[semtok.Category]string
	// EscapeQuotes also escapes double and single quotes.
	EscapeQuotes bool
}

var _ Dialect = HTML{}

func (me HTML) Escape(text string) string {
	if me.EscapeQuotes {
		return htmlQuoteEscaper.Replace(text)
	}
	return htmlEscaper.Replace(text)
}

func (me HTML) EscapeToken(text string) string { return me.Escape(text) }

func (me HTML) Wrap(category semtok.Category, escaped string) string {
	style, ok := me.Styles[category]
	if !ok {
		return escaped
	}
	return `<span style="` + style + `">` + escaped + `</span>`
}

func (HTML) Blank() string { return "" }

// HTMLLines renders stream as one HTML fragment per source line.
func HTMLLines(stream semtok.Stream, styles map[semtok.Category]string) []string {
	return Lines(HTML{Styles: styles}, stream)
}

// HTMLBlock joins rendered lines into a monospaced div.
func HTMLBlock(lines []string) string {
	return `<div style="font-family:monospace;white-space: pre;">` + strings.Join(lines, "<br/>") + `</div>`
}
