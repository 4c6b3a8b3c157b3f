/*
Package render turns a merged token stream into styled output lines.

Line Walker:
-----------
Every output format shares one walk over the source lines:

	line "  int x = 0;"      tokens [2,5) keyword-type  [10,11) literal-int
	       ^^ ^^^ ^^^^^ ^ ^
	       |  |   |     | +-- trailing gap:  Escape
	       |  |   |     +---- token:         Wrap(category, EscapeToken(text))
	       |  |   +---------- gap:           Escape
	       |  +-------------- token:         Wrap(category, EscapeToken(text))
	       +----------------- leading gap:   Escape

A line without tokens is escaped as a whole, and a line that renders to the
empty string is replaced by the dialect's blank marker.
*/
package render

import (
	"slices"

	"github.com/walteh/semco/pkg/position"
	"github.com/walteh/semco/pkg/semtok"
)

// Dialect is one output format for the line walker.
type Dialect interface {
	// Escape makes plain source text between tokens safe for the output format.
	Escape(text string) string
	// EscapeToken does the same for the text of a token.
	EscapeToken(text string) string
	// Wrap decorates the already escaped text of a token. Categories without
	// a registered style return escaped unchanged.
	Wrap(category semtok.Category, escaped string) string
	// Blank is emitted in place of an empty rendered line.
	Blank() string
}

// Lines renders every line of stream.Text with d. Token columns beyond the end
// of a line are clamped to it and overlapping tokens are cut at the end of
// the previous one.
func Lines(d Dialect, stream semtok.Stream) []string {
	lines := stream.Lines()
	byLine := make(map[int][]semtok.Token, len(lines))
	for _, tok := range stream.Tokens {
		byLine[tok.Line] = append(byLine[tok.Line], tok)
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		rendered := renderLine(d, line, byLine[i])
		if rendered == "" {
			rendered = d.Blank()
		}
		out[i] = rendered
	}
	return out
}

func renderLine(d Dialect, line string, toks []semtok.Token) string {
	if len(toks) == 0 {
		return d.Escape(line)
	}

	toks = slices.Clone(toks)
	slices.SortStableFunc(toks, func(a, b semtok.Token) int {
		return a.Start - b.Start
	})

	width := position.RuneLen(line)
	var (
		buf  []byte
		prev int
	)
	for _, tok := range toks {
		start := min(max(tok.Start, prev), width)
		end := min(max(tok.End(), start), width)

		buf = append(buf, d.Escape(position.Slice(line, prev, start))...)
		if end > start {
			buf = append(buf, d.Wrap(tok.Category, d.EscapeToken(position.Slice(line, start, end)))...)
		}
		prev = end
	}
	buf = append(buf, d.Escape(position.Slice(line, prev, width))...)
	return string(buf)
}
