package position

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Place is a zero-based line and rune column.
type Place struct {
	Line      int
	Character int
}

func (p Place) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Span is the half-open column range [Start, End) on one line.
type Span struct {
	Line  int
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Line, s.Start, s.End)
}

// Lines splits text on "\n", "\r\n" and "\r". A trailing terminator does not
// start an extra line, so "a\nb\n" has two lines and "" has none.
func Lines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// RuneLen is the length of s in columns.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Slice returns the runes [start, end) of line, clamping both bounds to the
// line.
func Slice(line string, start, end int) string {
	lo, hi := byteOffset(line, start), byteOffset(line, end)
	if lo >= hi {
		return ""
	}
	return line[lo:hi]
}

// byteOffset converts a rune column to a byte offset, clamped to [0, len(line)].
func byteOffset(line string, col int) int {
	if col <= 0 {
		return 0
	}
	n := 0
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	return len(line)
}

// Find returns every occurrence of snippet in lines, overlapping ones
// included, ordered by line and then column.
func Find(lines []string, snippet string) []Span {
	if snippet == "" {
		return nil
	}
	width := RuneLen(snippet)
	var spans []Span
	for i, line := range lines {
		col := 0
		for off := range line {
			if strings.HasPrefix(line[off:], snippet) {
				spans = append(spans, Span{Line: i, Start: col, End: col + width})
			}
			col++
		}
	}
	return spans
}

// Cursor walks text while tracking the line and column of the next rune.
type Cursor struct {
	Place
	pendingCR bool
}

// Advance moves the cursor past text and returns the single-line pieces of it,
// each starting at the place it occupies. Line terminators are not part of any
// piece and empty pieces are omitted.
func (c *Cursor) Advance(text string) []Piece {
	var pieces []Piece
	start := c.Place
	width := 0
	flush := func() {
		if width > 0 {
			pieces = append(pieces, Piece{Place: start, Length: width})
		}
		width = 0
	}
	for _, r := range text {
		if c.pendingCR {
			c.pendingCR = false
			if r == '\n' {
				start = c.Place
				continue
			}
		}
		switch r {
		case '\n', '\r':
			flush()
			c.Line++
			c.Character = 0
			c.pendingCR = r == '\r'
			start = c.Place
		default:
			c.Character++
			width++
		}
	}
	flush()
	return pieces
}

// Piece is a single-line run of text produced by [Cursor.Advance].
type Piece struct {
	Place
	Length int
}
