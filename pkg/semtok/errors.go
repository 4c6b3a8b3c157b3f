package semtok

import (
	"gitlab.com/tozd/go/errors"
)

// Errors raised by the token model. They signal corrupted input and are never
// recovered from inside this package.
var (
	// ErrDecode indicates a wire token array that cannot be decoded.
	ErrDecode = errors.Base("invalid wire tokens")

	// ErrMergeInvariant indicates an input stream that is unsorted or overlapping.
	ErrMergeInvariant = errors.Base("stream is not sorted and non-overlapping")

	// ErrRange indicates a range extraction with a negative result.
	ErrRange = errors.Base("range does not intersect token")

	// ErrUnknownCategory indicates a category name outside the vocabulary.
	ErrUnknownCategory = errors.Base("unknown category")
)
