/*
Package wire converts between the delta-compressed semantic token arrays of the
Language Server Protocol and absolute [semtok.Token] values.

Wire Format:
-----------
Every token takes five integers:

	[deltaLine, deltaStart, length, typeIndex, modifierBits]

	deltaLine  == 0 -> same line as the previous token, deltaStart is relative
	deltaLine  >  0 -> deltaStart is the absolute start column on the new line

typeIndex points into the legend's token types and bit i of modifierBits
selects the legend's i-th modifier.
*/
package wire

import (
	"math/bits"

	"fortio.org/safecast"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/semtok"
)

// ErrDecode is [semtok.ErrDecode], repeated here for callers that only deal
// with the wire format.
var ErrDecode = semtok.ErrDecode

// ErrEncode indicates tokens that cannot be expressed with a legend.
var ErrEncode = errors.Base("tokens cannot be encoded")

// SemanticTokensLegend mirrors the LSP legend object a server announces in its
// initialize response.
type SemanticTokensLegend struct {
	TokenTypes     []string `json:"tokenTypes" yaml:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers" yaml:"tokenModifiers"`
}

// Document is the raw analyzer output for one source unit: the session legend
// plus the semantic tokens response data.
type Document struct {
	Legend   SemanticTokensLegend `json:"legend"`
	Data     []uint32             `json:"data"`
	ResultID string               `json:"resultId,omitempty"`
}

// Legend is a validated legend, with every token type resolved to a known
// category.
type Legend struct {
	categories []semtok.Category
	modifiers  []string
}

// NewLegend resolves the token type names of raw against the category
// vocabulary.
func NewLegend(raw SemanticTokensLegend) (*Legend, error) {
	categories := make([]semtok.Category, len(raw.TokenTypes))
	for i, name := range raw.TokenTypes {
		c, err := semtok.ParseCategory(name)
		if err != nil {
			return nil, errors.Errorf("legend token type %d: %w", i, err)
		}
		categories[i] = c
	}
	return &Legend{
		categories: categories,
		modifiers:  append([]string(nil), raw.TokenModifiers...),
	}, nil
}

// Categories returns the resolved token types in legend order.
func (l *Legend) Categories() []semtok.Category {
	return append([]semtok.Category(nil), l.categories...)
}

// Modifiers returns the modifier names in bit order.
func (l *Legend) Modifiers() []string {
	return append([]string(nil), l.modifiers...)
}

func (l *Legend) category(idx uint32) (semtok.Category, error) {
	if uint64(idx) >= uint64(len(l.categories)) {
		return "", errors.Errorf("token type index %d outside legend of %d types: %w", idx, len(l.categories), ErrDecode)
	}
	return l.categories[idx], nil
}

func (l *Legend) modifierSet(mask uint32) (semtok.Modifiers, error) {
	var names []string
	for bit := 0; bit < bits.Len32(mask); bit++ {
		if mask&(1<<bit) == 0 {
			continue
		}
		if bit >= len(l.modifiers) {
			return nil, errors.Errorf("modifier bit %d outside legend of %d modifiers: %w", bit, len(l.modifiers), ErrDecode)
		}
		names = append(names, l.modifiers[bit])
	}
	return semtok.NewModifiers(names...), nil
}

// Decode converts a delta-encoded token array into absolute tokens, in input
// order.
func Decode(data []uint32, legend *Legend) ([]semtok.Token, error) {
	if len(data)%5 != 0 {
		return nil, errors.Errorf("array of %d integers is not a multiple of 5: %w", len(data), ErrDecode)
	}

	toks := make([]semtok.Token, 0, len(data)/5)
	var prevLine, prevStart int
	for i := 0; i < len(data); i += 5 {
		deltaLine, deltaStart := int(data[i]), int(data[i+1])

		line, start := deltaLine, deltaStart
		if i > 0 {
			line = prevLine + deltaLine
			if deltaLine == 0 {
				start = prevStart + deltaStart
			}
		}

		category, err := legend.category(data[i+3])
		if err != nil {
			return nil, errors.Errorf("token %d: %w", i/5, err)
		}
		modifiers, err := legend.modifierSet(data[i+4])
		if err != nil {
			return nil, errors.Errorf("token %d: %w", i/5, err)
		}

		toks = append(toks, semtok.Token{
			Line:      line,
			Start:     start,
			Length:    int(data[i+2]),
			Category:  category,
			Modifiers: modifiers,
		})
		prevLine, prevStart = line, start
	}
	return toks, nil
}

// DecodeDocument validates the document legend and decodes its data.
func DecodeDocument(doc Document) ([]semtok.Token, error) {
	legend, err := NewLegend(doc.Legend)
	if err != nil {
		return nil, errors.Errorf("resolving legend: %w", err)
	}
	toks, err := Decode(doc.Data, legend)
	if err != nil {
		return nil, errors.Errorf("decoding tokens: %w", err)
	}
	return toks, nil
}

// Encode is the inverse of [Decode]. tokens must be sorted by line and start.
func Encode(tokens []semtok.Token, legend *Legend) ([]uint32, error) {
	typeIndex := make(map[semtok.Category]uint32, len(legend.categories))
	for i, c := range legend.categories {
		if _, ok := typeIndex[c]; !ok {
			typeIndex[c] = uint32(i)
		}
	}
	modifierBit := make(map[string]uint32, len(legend.modifiers))
	for i, m := range legend.modifiers {
		if _, ok := modifierBit[m]; !ok && i < 32 {
			modifierBit[m] = 1 << i
		}
	}

	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart int
	for i, tok := range tokens {
		deltaLine, deltaStart := tok.Line, tok.Start
		if i > 0 {
			deltaLine = tok.Line - prevLine
			if deltaLine == 0 {
				deltaStart = tok.Start - prevStart
			}
		}

		var fields [3]uint32
		for j, v := range [3]int{deltaLine, deltaStart, tok.Length} {
			u, err := safecast.Conv[uint32](v)
			if err != nil {
				return nil, errors.Errorf("token %d (%s) is out of order or out of range: %w", i, tok, ErrEncode)
			}
			fields[j] = u
		}

		idx, ok := typeIndex[tok.Category]
		if !ok {
			return nil, errors.Errorf("token %d: category %q not in legend: %w", i, tok.Category, ErrEncode)
		}
		var mask uint32
		for _, m := range tok.Modifiers {
			bit, ok := modifierBit[m]
			if !ok {
				return nil, errors.Errorf("token %d: modifier %q not in legend: %w", i, m, ErrEncode)
			}
			mask |= bit
		}

		data = append(data, fields[0], fields[1], fields[2], idx, mask)
		prevLine, prevStart = tok.Line, tok.Start
	}
	return data, nil
}
