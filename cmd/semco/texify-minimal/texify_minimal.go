package texify_minimal

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

// Handler converts source to LaTeX with the lexer alone. The source is
// either given inline or read from inPath.
type Handler struct {
	fs afero.Fs

	language string
	text     string
	inPath   string
	outPath  string
}

func NewTexifyMinimalCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "texify-minimal <language> <text> <out-path>",
		Short: "convert a piece of code to LaTeX SemCo code without a stored analysis",
		Args:  cobra.ExactArgs(3),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.language, me.text, me.outPath = args[0], args[1], args[2]
		return me.Run(cmd.Context())
	}

	return cmd
}

func NewTexifyMinimalFileCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "texify-minimal-file <language> <in-path> <out-path>",
		Short: "convert a source file to LaTeX SemCo code without a stored analysis",
		Args:  cobra.ExactArgs(3),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.language, me.inPath, me.outPath = args[0], args[1], args[2]
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	text := me.text
	if me.inPath != "" {
		src, err := afero.ReadFile(me.fs, me.inPath)
		if err != nil {
			return errors.Errorf("reading source: %w", err)
		}
		text = string(src)
	}

	stream, err := compute.Minimal(ctx, me.language, text)
	if err != nil {
		return err
	}

	out := render.LaTeXJoin(render.LaTeXLines(stream, true)) + "\n"
	if err := store.New(me.fs).WriteFile(me.outPath, []byte(out)); err != nil {
		return errors.Errorf("writing LaTeX: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", me.outPath).Str("language", me.language).Msg("wrote LaTeX")
	return nil
}
