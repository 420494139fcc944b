package output

import "strings"

// languageGroup is one language header and its linters, in input order.
type languageGroup struct {
	language string
	names    []string
	infos    []LinterInfo
}

// groupByLanguage groups linters by language, ordering groups by the first
// time each language is encountered.
func groupByLanguage(set *LinterSet) []*languageGroup {
	var groups []*languageGroup
	index := make(map[string]*languageGroup)
	for name, info := range set.All() {
		g, ok := index[info.Language]
		if !ok {
			g = &languageGroup{language: info.Language}
			index[info.Language] = g
			groups = append(groups, g)
		}
		g.names = append(g.names, name)
		g.infos = append(g.infos, info)
	}
	return groups
}

// FormatLinterList renders the linter inventory. FormatJSON produces an
// object keyed by linter name; every other format produces the grouped text
// listing.
func FormatLinterList(set *LinterSet, format Format, opts Options) (string, error) {
	if set == nil {
		set = NewLinterSet()
	}
	if format == FormatJSON {
		return marshalIndent(set)
	}
	return renderLinterText(set, resolveStyles(opts)), nil
}

func renderLinterText(set *LinterSet, st Styles) string {
	var lines []string
	for i, g := range groupByLanguage(set) {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, st.Bold.Render(strings.ToUpper(g.language)))
		for j, name := range g.names {
			info := g.infos[j]
			lines = append(lines, linterStatusLine(name, info, st), "      "+st.Dim.Render(info.Description))
		}
	}
	return strings.Join(lines, "\n")
}

func linterStatusLine(name string, info LinterInfo, st Styles) string {
	var b strings.Builder
	b.WriteString("  ")
	if info.Installed {
		b.WriteString(st.Success.Render(GlyphSuccess))
	} else {
		b.WriteString(st.Error.Render(GlyphError))
	}
	b.WriteByte(' ')
	b.WriteString(name)
	if info.Version != "" {
		b.WriteByte(' ')
		b.WriteString(st.Dim.Render(info.Version))
	}
	if info.CanFix {
		b.WriteByte(' ')
		b.WriteString(st.Fixable.Render("[can fix]"))
	}
	if info.IsPlugin() {
		b.WriteByte(' ')
		b.WriteString(st.Info.Render("[plugin]"))
	}
	return b.String()
}
