// Package debug builds the console logger used by the semco command.
package debug

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// Options configures [NewLogger].
type Options struct {
	Level zerolog.Level
	// Color enables colored console output.
	Color bool
	// Caller adds a caller field to every event.
	Caller bool
	// TimeFormat overrides the millisecond UTC default.
	TimeFormat string
}

// NewLogger returns a console logger writing to w.
func NewLogger(w io.Writer, opts Options) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !opts.Color,
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, "caller", zerolog.MessageFieldName},
		FieldsExclude: []string{
			"caller",
		},
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprint(i)
		},
	}

	logger := zerolog.New(out).Level(opts.Level).Hook(TimeHook{Format: opts.TimeFormat})
	if opts.Caller {
		logger = logger.Hook(CallerHook{WithColor: opts.Color})
	}
	return logger
}

// WithLogger attaches a logger built by [NewLogger] to ctx.
func WithLogger(ctx context.Context, w io.Writer, opts Options) context.Context {
	return NewLogger(w, opts).WithContext(ctx)
}

// callerSkip reads the frame count an event was told to skip.
func callerSkip(e *zerolog.Event) int {
	v := reflect.ValueOf(e).Elem()
	field := v.FieldByName("skipFrame")

	if field.IsValid() && field.CanAddr() {
		return int(field.Int())
	}

	return 0
}

// TimeHook stamps events with the wall clock in UTC.
type TimeHook struct {
	Format string
}

func (t TimeHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	format := t.Format
	if format == "" {
		format = "2006-01-02T15:04:05.0000Z"
	}
	e.Str(zerolog.TimestampFieldName, time.Now().UTC().Format(format))
}

// CallerHook records the package, file and line that emitted an event.
type CallerHook struct {
	WithColor bool
}

func (c CallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	pc, file, line, ok := runtime.Caller(callerSkip(e) + 3)
	if !ok {
		return
	}

	pkg, _ := SplitFuncName(runtime.FuncForPC(pc).Name())

	e.Str("caller", FormatCaller(pkg, file, line, c.WithColor))
}

// SplitFuncName splits a fully qualified function name as reported by the
// runtime into its package path and the function, with method receivers kept
// on the function side.
func SplitFuncName(name string) (pkg, function string) {
	lastSlash := strings.LastIndexByte(name, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}

	firstDot := strings.IndexByte(name[lastSlash:], '.') + lastSlash
	if firstDot < lastSlash {
		return name, ""
	}

	pkg = name[:firstDot]
	function = name[firstDot+1:]

	if strings.Contains(pkg, ".(") {
		parts := strings.SplitN(pkg, ".(", 2)
		pkg = parts[0]
		function = "(" + parts[1] + "." + function
	}

	return pkg, function
}

func FormatCaller(pkg, path string, number int, colorize bool) string {
	p := FileNameOfPath(path)
	if colorize {
		p = color.New(color.Bold).Sprint(p)
		num := color.New(color.FgHiRed, color.Bold).Sprintf("%d", number)
		sep := color.New(color.Faint).Sprint(":")

		return fmt.Sprintf("%s%s%s%s%s", pkg, sep, p, sep, num)
	}

	return fmt.Sprintf("%s:%s:%d", pkg, p, number)
}

func FileNameOfPath(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
