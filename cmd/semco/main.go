package main

import (
	"context"
	"os"
	runtimedebug "runtime/debug"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/cmd/semco/analyze"
	"github.com/walteh/semco/cmd/semco/render"
	"github.com/walteh/semco/cmd/semco/texify"
	texify_minimal "github.com/walteh/semco/cmd/semco/texify-minimal"
	texify_partial "github.com/walteh/semco/cmd/semco/texify-partial"
	"github.com/walteh/semco/pkg/debug"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var (
		logLevel string
		verbose  bool
	)

	rootCmd := &cobra.Command{
		Use:          "semco",
		Short:        "Semantic code highlighting for LaTeX, HTML and the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := debug.Options{Level: zerolog.WarnLevel, Color: !color.NoColor}
			if logLevel != "" {
				lvl, err := zerolog.ParseLevel(logLevel)
				if err != nil {
					return errors.Errorf("parsing --log-level: %w", err)
				}
				opts.Level = lvl
			}
			if verbose {
				opts.Level = zerolog.DebugLevel
				opts.Caller = true
			}
			cmd.SetContext(debug.WithLogger(cmd.Context(), os.Stderr, opts))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "debug", false, "log at debug level with callers")

	info, ok := runtimedebug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	rootCmd.AddCommand(analyze.NewAnalyzeCommand())
	rootCmd.AddCommand(texify.NewTexifyCommand())
	rootCmd.AddCommand(texify_partial.NewTexifyPartialCommand())
	rootCmd.AddCommand(texify_minimal.NewTexifyMinimalCommand())
	rootCmd.AddCommand(texify_minimal.NewTexifyMinimalFileCommand())
	rootCmd.AddCommand(render.NewRenderCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
