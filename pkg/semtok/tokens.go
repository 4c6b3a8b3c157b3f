/*
Token Model:
-----------
A token covers [Start, Start+Length) on exactly one line:

	line 3:  func Run(ctx context.Context) error
	              ^  ^
	           Start  End = Start + Length
	              [Run] -> Token{Line: 3, Start: 5, Length: 3, Category: function}

Tokens are values. Every operation that changes a bound returns a new token.
*/
package semtok

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/position"
)

// Token is a classified span on a single line. Columns are rune offsets.
type Token struct {
	Line      int       `json:"line" msgpack:"line"`
	Start     int       `json:"start" msgpack:"start"`
	Length    int       `json:"length" msgpack:"length"`
	Category  Category  `json:"token_type" msgpack:"token_type"`
	Modifiers Modifiers `json:"token_modifiers" msgpack:"token_modifiers"`
}

// NewToken builds a token from its end column instead of its length.
func NewToken(line, start, end int, category Category, modifiers ...string) Token {
	return Token{
		Line:      line,
		Start:     start,
		Length:    end - start,
		Category:  category,
		Modifiers: NewModifiers(modifiers...),
	}
}

// End is the exclusive end column.
func (t Token) End() int {
	return t.Start + t.Length
}

// WithEnd moves the end column, keeping Start fixed.
func (t Token) WithEnd(end int) Token {
	t.Length = end - t.Start
	return t
}

// WithStart moves the start column, keeping End fixed.
func (t Token) WithStart(start int) Token {
	end := t.End()
	t.Start = start
	t.Length = end - start
	return t
}

// SameClass reports whether both tokens carry the same category and modifiers.
func (t Token) SameClass(other Token) bool {
	return t.Category == other.Category && t.Modifiers.Equal(other.Modifiers)
}

// Identical reports whether both tokens cover the same span with the same class.
func (t Token) Identical(other Token) bool {
	return t.Line == other.Line &&
		t.Start == other.Start &&
		t.End() == other.End() &&
		t.SameClass(other)
}

// Adjoins reports whether next continues t without a gap and with the same class.
func (t Token) Adjoins(next Token) bool {
	return t.Line == next.Line && t.End() == next.Start && t.SameClass(next)
}

// Limited intersects the token with the half-open column range [lo, hi) on the
// token's line. A zero-length result is valid; a negative one is an error.
func (t Token) Limited(lo, hi int) (Token, error) {
	start := max(t.Start, lo)
	length := min(t.End(), hi) - start
	if length < 0 {
		return Token{}, errors.Errorf("limiting %s to [%d, %d): %w", t, lo, hi, ErrRange)
	}
	t.Start = start
	t.Length = length
	return t, nil
}

// Text returns the part of lines covered by the token, or "" if the token lies
// outside of lines.
func (t Token) Text(lines []string) string {
	if t.Line < 0 || t.Line >= len(lines) {
		return ""
	}
	return position.Slice(lines[t.Line], t.Start, t.End())
}

func (t Token) String() string {
	mods := ""
	if len(t.Modifiers) > 0 {
		mods = "{" + strings.Join(t.Modifiers, ",") + "}"
	}
	return fmt.Sprintf("%d:%d-%d:%s%s", t.Line, t.Start, t.End(), t.Category, mods)
}

// Stream pairs tokens with the exact source text they annotate.
type Stream struct {
	Text   string  `json:"txt" msgpack:"txt"`
	Tokens []Token `json:"tokens" msgpack:"tokens"`
}

// NewStream builds a stream; tokens is not copied.
func NewStream(text string, tokens []Token) Stream {
	return Stream{Text: text, Tokens: tokens}
}

// Lines splits the stream text the same way token line numbers count lines.
func (s Stream) Lines() []string {
	return position.Lines(s.Text)
}

// OnLine returns the tokens on line, in stream order.
func (s Stream) OnLine(line int) []Token {
	var out []Token
	for _, tok := range s.Tokens {
		if tok.Line == line {
			out = append(out, tok)
		}
	}
	return out
}

// Canonical returns a copy of the stream with every modifier set rebuilt, for
// streams that were decoded by something other than this package.
func (s Stream) Canonical() Stream {
	toks := make([]Token, len(s.Tokens))
	for i, tok := range s.Tokens {
		tok.Modifiers = NewModifiers(tok.Modifiers...)
		toks[i] = tok
	}
	return Stream{Text: s.Text, Tokens: toks}
}
