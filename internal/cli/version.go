package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tydukes/coding-style-guide-sub009/internal/version"
)

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version of styleguide. With --verbose, also print build information.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.streams.Out, version.String())
			if !a.verbose {
				return
			}
			info := version.Info()
			keys := make([]string, 0, len(info))
			for k := range info {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(a.streams.Out, "  %s: %s\n", k, info[k])
			}
		},
	}
}
