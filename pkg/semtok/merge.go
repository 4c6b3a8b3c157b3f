package semtok

import (
	"cmp"
	"slices"

	"gitlab.com/tozd/go/errors"
)

type origin uint8

const (
	originPrimary origin = iota
	originSecondary
)

type candidate struct {
	tok    Token
	origin origin
}

func compareCandidates(a, b candidate) int {
	return cmp.Or(
		cmp.Compare(a.tok.Line, b.tok.Line),
		cmp.Compare(a.tok.Start, b.tok.Start),
		cmp.Compare(a.tok.End(), b.tok.End()),
		cmp.Compare(a.origin, b.origin),
	)
}

// outcome tags what a single fold step did to the last accepted token and the
// candidate.
type outcome uint8

const (
	// candidate accepted as is
	outcomeKept outcome = iota
	// candidate absorbed into the last token
	outcomeExtended
	// last token or candidate lost part of its span
	outcomeTruncated
	// candidate discarded
	outcomeDropped
)

type resolution struct {
	outcome outcome

	// last replaces the previously accepted token unless dropLast is set
	last     candidate
	dropLast bool

	// next is appended when accept is set
	next   candidate
	accept bool

	// tail is the part of the previous last token that the candidate did not
	// cover, to be reconsidered later
	tail *candidate
}

// resolve decides how candidate t relates to the last accepted token.
func resolve(last, t candidate) resolution {
	if t.tok.Identical(last.tok) {
		return resolution{outcome: outcomeDropped, last: last}
	}

	if t.tok.Line != last.tok.Line || t.tok.Start >= last.tok.End() {
		return resolution{outcome: outcomeKept, last: last, next: t, accept: true}
	}

	if t.tok.SameClass(last.tok) {
		last.tok = last.tok.WithEnd(max(last.tok.End(), t.tok.End()))
		return resolution{outcome: outcomeExtended, last: last}
	}

	if t.origin == originPrimary {
		res := resolution{outcome: outcomeTruncated, next: t, accept: true}
		if last.tok.End() > t.tok.End() {
			res.tail = &candidate{tok: last.tok.WithStart(t.tok.End()), origin: originSecondary}
		}
		last.tok = last.tok.WithEnd(t.tok.Start)
		res.last = last
		res.dropLast = last.tok.Length <= 0
		return res
	}

	t.tok = t.tok.WithStart(last.tok.End())
	if t.tok.Length <= 0 {
		return resolution{outcome: outcomeDropped, last: last}
	}
	return resolution{outcome: outcomeTruncated, last: last, next: t, accept: true}
}

// Merge combines primary and secondary into one sorted, non-overlapping
// stream. Where the streams overlap, every column covered by a primary token
// keeps the primary classification. When both streams hold a token with the
// exact same span, the primary token wins.
//
// Both inputs must satisfy [Validate]; otherwise Merge returns an error
// wrapping [ErrMergeInvariant]. Zero-length tokens classify nothing and are
// left out of the result, so merging a stream with itself returns the same
// stream only when it holds no zero-length tokens.
func Merge(primary, secondary []Token) ([]Token, error) {
	if err := Validate(primary); err != nil {
		return nil, errors.Errorf("primary stream: %w", err)
	}
	if err := Validate(secondary); err != nil {
		return nil, errors.Errorf("secondary stream: %w", err)
	}

	queue := make([]candidate, 0, len(primary)+len(secondary))
	for _, tok := range primary {
		if tok.Length > 0 {
			queue = append(queue, candidate{tok: tok, origin: originPrimary})
		}
	}
	for _, tok := range secondary {
		if tok.Length > 0 {
			queue = append(queue, candidate{tok: tok, origin: originSecondary})
		}
	}
	slices.SortStableFunc(queue, compareCandidates)

	out := make([]candidate, 0, len(queue))
	for i := 0; i < len(queue); i++ {
		t := queue[i]
		if len(out) == 0 {
			out = append(out, t)
			continue
		}

		res := resolve(out[len(out)-1], t)
		out = out[:len(out)-1]
		if !res.dropLast {
			out = append(out, res.last)
		}
		if res.accept {
			out = append(out, res.next)
		}
		if res.tail != nil {
			rest := queue[i+1:]
			at, _ := slices.BinarySearchFunc(rest, *res.tail, compareCandidates)
			queue = slices.Insert(queue, i+1+at, *res.tail)
		}
	}

	merged := make([]Token, len(out))
	for i, c := range out {
		merged[i] = c.tok
	}
	return merged, nil
}

// Validate checks that tokens are sorted by (line, start), pairwise
// non-overlapping and have non-negative coordinates.
func Validate(tokens []Token) error {
	for i, tok := range tokens {
		if tok.Line < 0 || tok.Start < 0 || tok.Length < 0 {
			return errors.Errorf("token %d (%s) has negative coordinates: %w", i, tok, ErrMergeInvariant)
		}
		if i == 0 {
			continue
		}
		prev := tokens[i-1]
		if tok.Line < prev.Line || (tok.Line == prev.Line && tok.Start < prev.End()) {
			return errors.Errorf("token %d (%s) overlaps or precedes %s: %w", i, tok, prev, ErrMergeInvariant)
		}
	}
	return nil
}
