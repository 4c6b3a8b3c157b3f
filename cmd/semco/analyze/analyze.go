package analyze

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/compute"
	"github.com/walteh/semco/pkg/semtok"
	"github.com/walteh/semco/pkg/store"
	"github.com/walteh/semco/pkg/wire"
)

type Handler struct {
	fs afero.Fs

	language   string
	inPath     string
	outPath    string
	primary    string
	clearCache bool
}

func NewAnalyzeCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "analyze <language> <in-path> <out-path>",
		Short: "analyze a source file and store the tokens for later use",
		Long: `Analyze a source file and store the resulting tokens at out-path.

If out-path already holds an analysis of the exact same source text it is
reused. Tokens from an external analyzer (a JSON document with "legend" and
"data") can be given with --primary and take precedence over the lexer.`,
	}

	cmd.Flags().BoolVarP(&me.clearCache, "clear-cache", "c", false, "when the analysis is redone, remove the .tex files and the .cache directory next to out-path")
	cmd.Flags().StringVar(&me.primary, "primary", "", "path of the analyzer document to merge over the lexer tokens")
	cmd.Args = cobra.ExactArgs(3)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.language, me.inPath, me.outPath = args[0], args[1], args[2]
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("path", me.inPath).Str("language", me.language).Logger()
	s := store.New(me.fs)

	src, err := afero.ReadFile(me.fs, me.inPath)
	if err != nil {
		return errors.Errorf("reading source: %w", err)
	}
	text := string(src)

	if _, ok, err := s.Fresh(me.outPath, text); err != nil {
		return errors.Errorf("checking stored analysis: %w", err)
	} else if ok {
		logger.Debug().Str("out", me.outPath).Msg("stored analysis is up to date")
		return nil
	}

	if me.clearCache {
		if err := s.ClearCache(filepath.Dir(me.outPath)); err != nil {
			return errors.Errorf("clearing cache: %w", err)
		}
	}

	stream, err := me.compute(ctx, text)
	if err != nil {
		return err
	}

	if err := s.Save(me.outPath, stream); err != nil {
		return errors.Errorf("saving analysis: %w", err)
	}

	logger.Info().Str("out", me.outPath).Int("token_count", len(stream.Tokens)).Msg("stored analysis")
	return nil
}

func (me *Handler) compute(ctx context.Context, text string) (semtok.Stream, error) {
	if me.primary == "" {
		stream, err := compute.Tokens(ctx, me.language, text, nil)
		if err != nil {
			return semtok.Stream{}, errors.Errorf("analyzing %s: %w", me.inPath, err)
		}
		return stream, nil
	}

	raw, err := afero.ReadFile(me.fs, me.primary)
	if err != nil {
		return semtok.Stream{}, errors.Errorf("reading analyzer document: %w", err)
	}
	var doc wire.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return semtok.Stream{}, errors.Errorf("parsing analyzer document %s: %w", me.primary, err)
	}

	stream, err := compute.Document(ctx, me.language, text, doc)
	if err != nil {
		return semtok.Stream{}, errors.Errorf("analyzing %s: %w", me.inPath, err)
	}
	return stream, nil
}
