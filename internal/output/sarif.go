package output

import "github.com/tydukes/coding-style-guide-sub009/internal/version"

const (
	SARIFSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	SARIFVersion = "2.1.0"

	ToolName           = "styleguide"
	ToolInformationURI = "https://tydukes.github.io/coding-style-guide/"
)

// SARIFLog is the root of a SARIF 2.1.0 document.
type SARIFLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule is a reportingDescriptor entry in tool.driver.rules.
type SARIFRule struct {
	ID               string       `json:"id"`
	ShortDescription SARIFMessage `json:"shortDescription"`
}

type SARIFMessage struct {
	Text string `json:"text"`
}

type SARIFResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    SARIFMessage    `json:"message"`
	Locations  []SARIFLocation `json:"locations"`
	Properties SARIFProperties `json:"properties"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

type SARIFProperties struct {
	Fixable bool `json:"fixable"`
}

// BuildSARIF maps the output to a SARIF log with a single run.
// Results are flattened file-major, issue-minor.
func BuildSARIF(out *LintOutput) *SARIFLog {
	results := make([]SARIFResult, 0)
	for _, r := range out.Results {
		for i := range r.Issues {
			issue := &r.Issues[i]
			endLine, endColumn := issue.End()
			results = append(results, SARIFResult{
				RuleID:  issue.Rule,
				Level:   issue.Severity.SARIFLevel(),
				Message: SARIFMessage{Text: issue.Message},
				Locations: []SARIFLocation{{
					PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: SARIFArtifactLocation{URI: r.File},
						Region: SARIFRegion{
							StartLine:   issue.Line,
							StartColumn: issue.Column,
							EndLine:     endLine,
							EndColumn:   endColumn,
						},
					},
				}},
				Properties: SARIFProperties{Fixable: issue.Fixable},
			})
		}
	}

	return &SARIFLog{
		Schema:  SARIFSchema,
		Version: SARIFVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{Driver: SARIFDriver{
				Name:           ToolName,
				Version:        version.Version,
				InformationURI: ToolInformationURI,
				Rules:          ExtractRules(out.Results),
			}},
			Results: results,
		}},
	}
}

func renderSARIF(out *LintOutput) (string, error) {
	return marshalIndent(BuildSARIF(out))
}
