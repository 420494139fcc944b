package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tydukes/coding-style-guide-sub009/internal/output"
)

type initOptions struct {
	Template string
	Force    bool
	Color    string
	NoColor  bool
}

func (a *App) newInitCommand() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a project config file",
		Long: fmt.Sprintf(`Create .styleguide.yaml (or $STYLEGUIDE_CONFIG_PATH) from a template.

Templates: %s`, strings.Join(TemplateNames(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ParseColorMode(opts.Color); err != nil {
				return err
			}
			path := ConfigPath()
			if err := WriteProjectConfig(path, opts.Template, opts.Force); err != nil {
				return err
			}

			// the file just written is now the project default
			project, err := LoadProjectConfig(path)
			if err != nil {
				return err
			}
			mode, err := colorFlag(cmd, opts.Color, opts.NoColor, project)
			if err != nil {
				return err
			}
			var fmtOpts output.Options
			fmtOpts.NoColor, fmtOpts.Renderer = resolveColor(mode, a.streams.Out)
			msg := output.FormatInitSuccess(path, opts.Template, fmtOpts)
			return output.NewWriter(a.streams.Out).WriteReport(msg)
		},
	}

	cmd.Flags().StringVarP(&opts.Template, "template", "t", "standard", "Config template ("+strings.Join(TemplateNames(), "|")+")")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing config file")
	cmd.Flags().StringVar(&opts.Color, "color", "auto", "Color output (auto|always|never)")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable color output")

	return cmd
}
