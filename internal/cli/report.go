package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tydukes/coding-style-guide-sub009/internal/input"
)

// reportOptions holds command-line options for the report command.
type reportOptions struct {
	Format        string
	Quiet         bool
	Color         string
	NoColor       bool
	Output        string
	Watch         bool
	Dir           string
	MmapThreshold int64
}

func (a *App) newReportCommand() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report [results-file|-]",
		Short: "Render a lint results document",
		Long: `Render a lint results document as a text report, JSON or SARIF 2.1.0.

With no file, or with "-", the document is read from stdin.

Exit codes:
  0 - No errors reported
  1 - At least one error reported
  2 - The report could not be produced`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd, args)
			if err != nil {
				return err
			}
			cfg.Verbose = a.verbose
			a.exitCode = Run(cmd.Context(), cfg, a.streams)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format (text|json|sarif)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Show errors only in the text report")
	cmd.Flags().StringVar(&opts.Color, "color", "auto", "Color output (auto|always|never)")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable color output")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-render whenever the results file changes")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Show file paths relative to this directory (default: working directory)")
	cmd.Flags().Int64Var(&opts.MmapThreshold, "mmap-threshold", input.DefaultMmapThreshold, "Memory-map results files of at least this many bytes")

	return cmd
}

// config merges flags with the project config. Flags set on the command line
// always win.
func (o *reportOptions) config(cmd *cobra.Command, args []string) (Config, error) {
	project, err := loadProjectConfig()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Path:          input.StdinPath,
		Format:        o.Format,
		Quiet:         o.Quiet,
		OutputFile:    o.Output,
		Watch:         o.Watch,
		Dir:           o.Dir,
		MmapThreshold: o.MmapThreshold,
	}
	if len(args) == 1 {
		cfg.Path = args[0]
	}

	if project != nil {
		if !cmd.Flags().Changed("format") && project.Format != "" {
			cfg.Format = project.Format
		}
		if !cmd.Flags().Changed("quiet") {
			cfg.Quiet = project.Quiet
		}
	}

	cfg.Color, err = colorFlag(cmd, o.Color, o.NoColor, project)
	if err != nil {
		return Config{}, fmt.Errorf("--color: %w", err)
	}
	return cfg, nil
}
