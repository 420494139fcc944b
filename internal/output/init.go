package output

import "strings"

// FormatInitSuccess renders the message shown after a config file has been
// written from a template.
func FormatInitSuccess(configPath, template string, opts Options) string {
	st := resolveStyles(opts)
	lines := []string{
		st.Success.Render(GlyphSuccess) + " Created " + st.Bold.Render(configPath) +
			" from the " + st.Bold.Render(template) + " template",
		"",
		"Next steps:",
		"  1. Review the settings in " + configPath,
		"  2. Run " + st.Info.Render(ToolName+" linters") + " to see which linters are available",
		"  3. Run " + st.Info.Render(ToolName+" report <results.json>") + " to render lint results",
	}
	return strings.Join(lines, "\n")
}
