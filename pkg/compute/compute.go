/*
Package compute wires the token producers, the merger and the renderers into
the operations the command line exposes.

	                 +----------------+
	  analyzer doc ->| wire.Decode    |-> Compact -+
	                 +----------------+            |     +--------------+
	                                               +---->| semtok.Merge |-> Stream
	                 +----------------+            |     +--------------+
	  source text  ->| lexer.Tokens   |------------+
	                 +----------------+
*/
package compute

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/lexer"
	"github.com/walteh/semco/pkg/semtok"
	"github.com/walteh/semco/pkg/wire"
)

// Tokens merges the primary tokens, if any, over the lexer tokens of text.
func Tokens(ctx context.Context, lang, text string, primary []semtok.Token) (semtok.Stream, error) {
	logger := zerolog.Ctx(ctx)
	began := time.Now()

	secondary, err := lexer.Tokens(ctx, lang, text)
	if err != nil {
		return semtok.Stream{}, errors.Errorf("lexing: %w", err)
	}

	primary = semtok.Compact(primary)
	merged, err := semtok.Merge(primary, secondary)
	if err != nil {
		return semtok.Stream{}, errors.Errorf("merging: %w", err)
	}

	logger.Debug().
		Str("language", lang).
		Int("primary_count", len(primary)).
		Int("secondary_count", len(secondary)).
		Int("token_count", len(merged)).
		Dur("took", time.Since(began)).
		Msg("computed tokens")

	return semtok.NewStream(text, merged), nil
}

// Document decodes an analyzer document and merges it over the lexer tokens.
func Document(ctx context.Context, lang, text string, doc wire.Document) (semtok.Stream, error) {
	primary, err := wire.DecodeDocument(doc)
	if err != nil {
		return semtok.Stream{}, errors.Errorf("decoding analyzer output: %w", err)
	}
	return Tokens(ctx, lang, text, primary)
}

// Minimal classifies text with the lexer alone.
func Minimal(ctx context.Context, lang, text string) (semtok.Stream, error) {
	toks, err := lexer.Tokens(ctx, lang, text)
	if err != nil {
		return semtok.Stream{}, errors.Errorf("lexing: %w", err)
	}
	return semtok.NewStream(text, toks), nil
}
