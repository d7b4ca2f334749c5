// Package cli implements the sketchy command-line interface.
//
// sketchy renders TOML scene files (see package scene) to PNG or SVG:
//
//	sketchy render scene.toml -o scene.png
//	sketchy bounds scene.toml
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes the tracing of the library packages to the log. Loggers are passed
// through context.Context.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version and the
// version command. It is called by main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

func versionString() string {
	return fmt.Sprintf("sketchy %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}

// NewRootCommand creates the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "sketchy",
		Short:        "sketchy draws hand-drawn looking charts",
		Long:         `sketchy renders circles, rectangles, segments and lines as bundles of random chords, which gives them a hand-drawn look.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			if verbose {
				routeTracing(logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(versionString())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newBoundsCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the sketchy CLI with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionString())
		},
	}
}
