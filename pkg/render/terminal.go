package render

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/walteh/semco/pkg/semtok"
)

// Reset ends every styled terminal token.
const Reset = "\x1b[0m"

// Terminal writes ANSI escape sequences. Source text is emitted verbatim.
type Terminal struct {
	Styles map[semtok.Category][]color.Attribute
}

var _ Dialect = Terminal{}

func (Terminal) Escape(text string) string { return text }

func (Terminal) EscapeToken(text string) string { return text }

func (Terminal) Blank() string { return "" }

func (me Terminal) Wrap(category semtok.Category, escaped string) string {
	attrs, ok := me.Styles[category]
	if !ok {
		return escaped
	}
	return Prefix(attrs...) + escaped + Reset
}

// Prefix is the escape sequence that switches on attrs, one sequence per
// attribute.
func Prefix(attrs ...color.Attribute) string {
	var b strings.Builder
	for _, a := range attrs {
		b.WriteString("\x1b[")
		b.WriteString(strconv.Itoa(int(a)))
		b.WriteByte('m')
	}
	return b.String()
}

// ANSI renders stream for a terminal, lines joined with "\n".
func ANSI(stream semtok.Stream, styles map[semtok.Category][]color.Attribute) string {
	return strings.Join(Lines(Terminal{Styles: styles}, stream), "\n")
}
