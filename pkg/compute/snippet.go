package compute

import (
	"math"
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/position"
	"github.com/walteh/semco/pkg/render"
	"github.com/walteh/semco/pkg/semtok"
)

var (
	ErrSnippetNotFound  = errors.Base("snippet not found")
	ErrAmbiguousSnippet = errors.Base("snippet renders differently at its occurrences")
)

// EveryOccurrence asks [Snippet] to check that all occurrences agree instead
// of picking one.
const EveryOccurrence = math.MinInt

// Occurrence is one place a snippet appears in a stream.
type Occurrence struct {
	Span position.Span
	// Full holds the tokens that lie entirely inside Span, as stored.
	Full []semtok.Token
	// Tokens holds every token touching Span, limited to it and moved to
	// line 0, column 0.
	Tokens []semtok.Token
}

// Stream is the snippet on its own, classified as at this occurrence.
func (o Occurrence) Stream(snippet string) semtok.Stream {
	return semtok.NewStream(snippet, o.Tokens)
}

// Occurrences finds snippet in every line of stream. When some occurrences
// are covered by exactly one token, only those are returned.
func Occurrences(stream semtok.Stream, snippet string) ([]Occurrence, error) {
	spans := position.Find(stream.Lines(), snippet)
	if len(spans) == 0 {
		return nil, errors.Errorf("%q: %w", snippet, ErrSnippetNotFound)
	}

	occs := make([]Occurrence, 0, len(spans))
	for _, span := range spans {
		occ := Occurrence{Span: span}
		for _, tok := range stream.Tokens {
			if tok.Line != span.Line {
				continue
			}
			if tok.Start >= span.Start && tok.End() <= span.End {
				occ.Full = append(occ.Full, tok)
			}
			if tok.Start < span.End && tok.End() > span.Start {
				limited, err := tok.Limited(span.Start, span.End)
				if err != nil {
					return nil, err
				}
				limited.Line = 0
				limited.Start -= span.Start
				occ.Tokens = append(occ.Tokens, limited)
			}
		}
		sort.SliceStable(occ.Tokens, func(i, j int) bool { return occ.Tokens[i].Start < occ.Tokens[j].Start })
		occs = append(occs, occ)
	}

	var singles []Occurrence
	for _, occ := range occs {
		if len(occ.Full) == 1 {
			singles = append(singles, occ)
		}
	}
	if len(singles) > 0 {
		return singles, nil
	}
	return occs, nil
}

// Snippet renders one occurrence of snippet with d. The index-th occurrence is
// used, counting from the end when index is negative. With [EveryOccurrence]
// every occurrence must render the same.
func Snippet(stream semtok.Stream, snippet string, index int, d render.Dialect) (string, error) {
	occs, err := Occurrences(stream, snippet)
	if err != nil {
		return "", err
	}

	renderOne := func(o Occurrence) string {
		return render.Lines(d, o.Stream(snippet))[0]
	}

	if index != EveryOccurrence {
		at := index
		if at < 0 {
			at += len(occs)
		}
		if at < 0 || at >= len(occs) {
			return "", errors.Errorf("occurrence %d of %q, only %d found: %w", index, snippet, len(occs), ErrSnippetNotFound)
		}
		return renderOne(occs[at]), nil
	}

	out := renderOne(occs[0])
	for _, o := range occs[1:] {
		if other := renderOne(o); other != out {
			return "", errors.Errorf("%q at %s renders as %q, at %s as %q: %w", snippet, occs[0].Span, out, o.Span, other, ErrAmbiguousSnippet)
		}
	}
	return out, nil
}
