package texify_partial

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/compute"
	"github.com/walteh/semco/pkg/render"
	"github.com/walteh/semco/pkg/store"
)

type Handler struct {
	fs afero.Fs

	inPath  string
	snippet string
	outPath string
	index   int
}

func NewTexifyPartialCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "texify-partial <in-path> <snippet> <out-path>",
		Short: "convert one occurrence of a code snippet in a stored analysis to LaTeX SemCo code",
		Long: `Find snippet in the analyzed source and convert it, classified as it is
there, to LaTeX SemCo code.

Occurrences that are covered by exactly one token are preferred. Without
--index every remaining occurrence has to produce the same output. A negative
--index counts from the last occurrence.`,
	}

	cmd.Flags().IntVar(&me.index, "index", 0, "the occurrence to use, counting from 0, or from -1 for the last one")
	cmd.Args = cobra.ExactArgs(3)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.inPath, me.snippet, me.outPath = args[0], args[1], args[2]
		if !cmd.Flags().Changed("index") {
			me.index = compute.EveryOccurrence
		}
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	s := store.New(me.fs)
	stream, err := s.Load(me.inPath)
	if err != nil {
		return errors.Errorf("loading analysis: %w", err)
	}

	out, err := compute.Snippet(stream, me.snippet, me.index, render.LaTeX{Space: false})
	if err != nil {
		return errors.Errorf("converting snippet: %w", err)
	}

	if err := s.WriteFile(me.outPath, []byte(out+"%\n")); err != nil {
		return errors.Errorf("writing LaTeX: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", me.outPath).Str("snippet", me.snippet).Msg("wrote LaTeX snippet")
	return nil
}
