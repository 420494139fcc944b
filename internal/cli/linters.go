package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tydukes/coding-style-guide-sub009/internal/input"
	"github.com/tydukes/coding-style-guide-sub009/internal/output"
)

var errNoRegistry = errors.New("no linter registry given and none configured")

type lintersOptions struct {
	Format  string
	Color   string
	NoColor bool
}

func (a *App) newLintersCommand() *cobra.Command {
	opts := &lintersOptions{}

	cmd := &cobra.Command{
		Use:   "linters [registry-file|-]",
		Short: "List the available linters grouped by language",
		Long: `List the linters in a registry file, grouped by language.

The registry is a YAML or JSON mapping from linter name to its details.
Without an argument the registry named in the project config is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLinters(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.Color, "color", "auto", "Color output (auto|always|never)")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable color output")

	return cmd
}

func (a *App) runLinters(cmd *cobra.Command, args []string, opts *lintersOptions) error {
	project, err := loadProjectConfig()
	if err != nil {
		return err
	}

	var path string
	switch {
	case len(args) == 1:
		path = args[0]
	case project != nil && project.Registry != "":
		path = project.Registry
	default:
		return errNoRegistry
	}

	mode, err := colorFlag(cmd, opts.Color, opts.NoColor, project)
	if err != nil {
		return fmt.Errorf("--color: %w", err)
	}

	logger := newLogger(a.streams.Err, a.verbose)
	reader := input.ForPath(path, a.streams.In, input.NewFileReader(0))
	set, err := input.ReadLinterSet(reader, path)
	if err != nil {
		return err
	}
	logger.Debug("read linter registry", "path", path, "linters", set.Len())

	var fmtOpts output.Options
	fmtOpts.NoColor, fmtOpts.Renderer = resolveColor(mode, a.streams.Out)
	list, err := output.FormatLinterList(set, output.ParseFormat(opts.Format), fmtOpts)
	if err != nil {
		return err
	}
	return output.NewWriter(a.streams.Out).WriteReport(list)
}
