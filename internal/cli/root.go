// Package cli provides the command-line interface for styleguide.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewApp(StdStreams()).Execute(ctx, os.Args[1:])
}

// App is one invocation of the command tree.
type App struct {
	streams  Streams
	verbose  bool
	exitCode int
}

// NewApp creates an App on the given streams.
func NewApp(streams Streams) *App {
	return &App{streams: streams}
}

// Execute runs args through the command tree and returns the exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.NewRootCommand()
	root.SetArgs(args)
	root.SetIn(a.streams.In)
	root.SetOut(a.streams.Out)
	root.SetErr(a.streams.Err)

	if err := root.ExecuteContext(ctx); err != nil {
		// SilenceErrors keeps cobra from printing this itself
		_, _ = fmt.Fprintf(a.streams.Err, "Error: %v\n", err)
		return ExitError
	}
	return a.exitCode
}

// NewRootCommand creates the root cobra command.
func (a *App) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "styleguide",
		Short: "Render lint results as text, JSON or SARIF",
		Long: `styleguide renders the results of a multi-language lint run.

The lint results document is produced by the lint orchestration step and
read from a file or stdin. It can be shown as a colored text report,
re-emitted as JSON, or converted to SARIF 2.1.0 for code-scanning tools.

Project defaults are read from .styleguide.yaml (or $STYLEGUIDE_CONFIG_PATH).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug information to stderr")

	root.AddCommand(a.newReportCommand())
	root.AddCommand(a.newLintersCommand())
	root.AddCommand(a.newInitCommand())
	root.AddCommand(a.newVersionCommand())
	return root
}

// loadProjectConfig reads the project config, if any.
func loadProjectConfig() (*ProjectConfig, error) {
	return LoadProjectConfig(ConfigPath())
}

// colorFlag resolves --color and --no-color against the project default.
func colorFlag(cmd *cobra.Command, color string, noColor bool, project *ProjectConfig) (ColorMode, error) {
	if noColor {
		return ColorNever, nil
	}
	if !cmd.Flags().Changed("color") && project != nil && project.Color != "" {
		color = project.Color
	}
	return ParseColorMode(color)
}
