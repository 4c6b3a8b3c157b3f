package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/semco/pkg/compute"
	"github.com/walteh/semco/pkg/render"
	"github.com/walteh/semco/pkg/semtok"
	"github.com/walteh/semco/pkg/store"
	"github.com/walteh/semco/pkg/style"
)

const (
	FormatANSI = "ansi"
	FormatHTML = "html"
)

var ErrUnknownFormat = errors.Base("unknown output format")

type Handler struct {
	fs     afero.Fs
	stdout io.Writer

	pattern   string
	format    string
	stylePath string
	outDir    string
	language  string
	jobs      int
}

func NewRenderCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs(), stdout: os.Stdout}

	cmd := &cobra.Command{
		Use:   "render <glob>",
		Short: "highlight every file matching a glob for the terminal or the browser",
		Long: `Highlight every file matching glob (doublestar syntax, so ** crosses
directories).

Stored analyses (.json, .msgpack) are rendered as they are, every other file
is classified with the lexer for --lang or, without it, for its file name.`,
		Example: `  semco render --format html --out site "src/**/*.py"`,
		Args:    cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&me.format, "format", FormatANSI, "output format, ansi or html")
	cmd.Flags().StringVar(&me.stylePath, "style", "", "style file (.yaml, .toml or .hcl), defaults to the colorful scheme")
	cmd.Flags().StringVar(&me.outDir, "out", "", "write one file per input into this directory instead of stdout")
	cmd.Flags().StringVar(&me.language, "lang", "", "language of every input, instead of guessing it from the file name")
	cmd.Flags().IntVarP(&me.jobs, "jobs", "j", runtime.NumCPU(), "number of files rendered at once")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.pattern = args[0]
		me.stdout = cmd.OutOrStdout()
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if me.format != FormatANSI && me.format != FormatHTML {
		return errors.Errorf("%q: %w", me.format, ErrUnknownFormat)
	}

	table := style.Colorful()
	if me.stylePath != "" {
		var err error
		if table, err = style.Load(me.fs, me.stylePath); err != nil {
			return errors.Errorf("loading style: %w", err)
		}
	}

	s := store.New(me.fs)
	paths, err := s.Glob(me.pattern)
	if err != nil {
		return errors.Errorf("matching %q: %w", me.pattern, err)
	}
	logger.Debug().Str("pattern", me.pattern).Int("file_count", len(paths)).Msg("rendering files")

	outputs := make([]string, len(paths))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(max(me.jobs, 1))
	for i, path := range paths {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stream, err := me.stream(ctx, s, path)
			if err != nil {
				return errors.Errorf("%s: %w", path, err)
			}
			outputs[i] = me.render(stream, table)
			if me.outDir == "" {
				return nil
			}
			out := filepath.Join(me.outDir, outputName(path, me.format))
			if err := s.WriteFile(out, []byte(outputs[i])); err != nil {
				return errors.Errorf("writing %s: %w", out, err)
			}
			zerolog.Ctx(ctx).Debug().Str("path", path).Str("out", out).Msg("rendered file")
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	if me.outDir != "" {
		return nil
	}
	for i, path := range paths {
		if len(paths) > 1 {
			fmt.Fprintf(me.stdout, "==> %s <==\n", path)
		}
		fmt.Fprintln(me.stdout, outputs[i])
	}
	return nil
}

func (me *Handler) stream(ctx context.Context, s *store.Store, path string) (semtok.Stream, error) {
	if _, err := store.FormatFor(path); err == nil {
		return s.Load(path)
	}

	src, err := afero.ReadFile(me.fs, path)
	if err != nil {
		return semtok.Stream{}, err
	}
	lang := me.language
	if lang == "" {
		lang = filepath.Base(path)
	}
	return compute.Minimal(ctx, lang, string(src))
}

func (me *Handler) render(stream semtok.Stream, table *style.Table) string {
	if me.format == FormatHTML {
		return render.HTMLBlock(render.HTMLLines(stream, table.HTML))
	}
	return render.ANSI(stream, table.Terminal)
}

// outputName maps src/a.py to src_a.py.html, keeping inputs from different
// directories apart.
func outputName(path, format string) string {
	ext := ".ansi"
	if format == FormatHTML {
		ext = ".html"
	}
	name := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/")
	return strings.ReplaceAll(name, "/", "_") + ext
}
