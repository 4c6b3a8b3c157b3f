package texify

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/render"
	"github.com/walteh/semco/pkg/store"
)

var ErrParams = errors.Base("invalid parameters")

type Handler struct {
	fs afero.Fs

	params  string
	inPath  string
	outPath string
	space   bool
}

func NewTexifyCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "texify <params> <in-path> <out-path>",
		Short: "convert a stored analysis to LaTeX SemCo code",
		Long: `Convert the analysis produced by "analyze" to LaTeX SemCo code.

params is a comma separated list of key=value pairs, possibly empty.
LineEnd drops every line from that index on, then LineBegin drops the lines
before it. Negative values count from the end.`,
		Example: `  semco texify "LineBegin=3,LineEnd=10" build/main.json build/main.tex`,
	}

	cmd.Flags().BoolVar(&me.space, "space", true, "emit \\SemCoSpace{} for spaces instead of breakable spaces")
	cmd.Args = cobra.ExactArgs(3)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.params, me.inPath, me.outPath = args[0], args[1], args[2]
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	params, err := ParseParams(me.params)
	if err != nil {
		return err
	}

	s := store.New(me.fs)
	stream, err := s.Load(me.inPath)
	if err != nil {
		return errors.Errorf("loading analysis: %w", err)
	}

	lines := render.LaTeXLines(stream, me.space)
	begin, end, err := params.lineRange(len(lines))
	if err != nil {
		return err
	}
	lines = lines[begin:end]

	if err := s.WriteFile(me.outPath, []byte(render.LaTeXJoin(lines)+"\n")); err != nil {
		return errors.Errorf("writing LaTeX: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", me.outPath).Int("line_count", len(lines)).Msg("wrote LaTeX")
	return nil
}

// Params are the key=value pairs handed over by the LaTeX package.
type Params map[string]string

// ParseParams parses "k1=v1,k2=v2". The empty string yields no parameters.
func ParseParams(s string) (Params, error) {
	params := Params{}
	if s == "" {
		return params, nil
	}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.Contains(v, "=") {
			return nil, errors.Errorf("%q is not a key=value pair: %w", pair, ErrParams)
		}
		params[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return params, nil
}

// Int returns the integer value of key, if present.
func (p Params) Int(key string) (int, bool, error) {
	v, ok := p[key]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, errors.Errorf("%s=%q is not an integer: %w", key, v, ErrParams)
	}
	return n, true, nil
}

func (p Params) lineRange(count int) (begin, end int, err error) {
	begin, end = 0, count
	if n, ok, err := p.Int("LineEnd"); err != nil {
		return 0, 0, err
	} else if ok {
		end = clampIndex(n, count)
	}
	if n, ok, err := p.Int("LineBegin"); err != nil {
		return 0, 0, err
	} else if ok {
		begin = clampIndex(n, end)
	}
	return begin, end, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	return min(max(i, 0), n)
}
