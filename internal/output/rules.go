package output

// ExtractRules returns one SARIF rule per distinct rule id, in the order the
// ids are first seen. The first issue carrying an id supplies its description.
func ExtractRules(results []LintResult) []SARIFRule {
	rules := make([]SARIFRule, 0)
	seen := make(map[string]struct{})
	for _, r := range results {
		for _, issue := range r.Issues {
			if _, ok := seen[issue.Rule]; ok {
				continue
			}
			seen[issue.Rule] = struct{}{}
			rules = append(rules, SARIFRule{
				ID:               issue.Rule,
				ShortDescription: SARIFMessage{Text: issue.Message},
			})
		}
	}
	return rules
}
