package render

import (
	"strings"

	"github.com/walteh/semco/pkg/semtok"
)

var latexEscapes = map[rune]string{
	'\\': `\SemCoBackSlash{}`,
	'{':  `\{`,
	'}':  `\}`,
	'#':  `\#`,
	'_':  `\_`,
	'&':  `\&`,
	'%':  `\%`,
	'"':  `\textquotedbl{}`,
	'\'': `\textquotesingle{}`,
	'~':  `\textasciitilde{}`,
	'(':  `(\allowbreak{}`,
	'<':  `\textless{}`,
	'>':  `\textgreater{}`,
}

// LaTeX writes SemCo macros. With Space set, spaces between tokens become
// \SemCoSpace{}, otherwise they are kept so LaTeX may break the line there.
// Spaces inside a token always become \SemCoSpace{}.
type LaTeX struct {
	Space bool
}

var _ Dialect = LaTeX{}

func (me LaTeX) Escape(text string) string {
	var b strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		switch {
		case r == '(' && i+1 < len(runes) && runes[i+1] == ')':
			b.WriteRune(r)
		case r == ' ' && me.Space:
			b.WriteString(`\SemCoSpace{}`)
		default:
			if sub, ok := latexEscapes[r]; ok {
				b.WriteString(sub)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func (LaTeX) EscapeToken(text string) string {
	return LaTeX{Space: true}.Escape(text)
}

func (LaTeX) Wrap(category semtok.Category, escaped string) string {
	return `\SemCoFormat{` + string(category) + `}{` + escaped + `}`
}

func (LaTeX) Blank() string { return `\ ` }

// LaTeXLines renders stream as one line of SemCo macros per source line.
func LaTeXLines(stream semtok.Stream, space bool) []string {
	return Lines(LaTeX{Space: space}, stream)
}

// LaTeXToken renders a single token outside of any stream.
func LaTeXToken(text string, category semtok.Category, space bool) string {
	d := LaTeX{Space: space}
	return d.Wrap(category, d.Escape(text))
}

// LaTeXJoin ends every line but the last with a forced line break and the
// last with a comment marker so no stray space follows it.
func LaTeXJoin(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		b.WriteString(l)
		if i+1 < len(lines) {
			b.WriteString(`\\`)
			b.WriteByte('\n')
		} else {
			b.WriteByte('%')
		}
	}
	return b.String()
}
