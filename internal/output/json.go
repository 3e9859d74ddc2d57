package output

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/dshills/facet/internal/review"
)

// JSON sub-formats.
const (
	JSONSARIF    = "sarif"
	JSONGitLabCI = "gitlab_ci"
	JSONMetrics  = "metrics"
)

// toolVersion is reported in the SARIF driver block.
const toolVersion = "0.1.0"

// JSONFormatter renders findings into structured JSON documents.
type JSONFormatter struct {
	cfg *FormatterConfig
}

func (j *JSONFormatter) Format(findings []review.Finding, octx review.OutputContext, subFormat string, opts map[string]string) (*FormattedOutput, error) {
	if subFormat == "" {
		subFormat = JSONSARIF
	}

	var doc any
	switch subFormat {
	case JSONSARIF:
		doc = buildSARIF(findings)
	case JSONGitLabCI:
		doc = buildGitLabCI(findings)
	case JSONMetrics:
		doc = j.buildMetrics(findings, octx)
	default:
		return nil, &UnsupportedSubFormatError{Format: "json", SubFormat: subFormat}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &RenderError{Format: "json", Reason: "marshaling " + subFormat, Err: err}
	}

	return NewFormattedOutput("json", string(data)+"\n", map[string]string{
		"subFormat": subFormat,
	}), nil
}

// SARIF schema types (v2.1.0 subset)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

type sarifFix struct {
	Description sarifMessage `json:"description"`
}

func buildSARIF(findings []review.Finding) sarifLog {
	rulesMap := make(map[string]sarifRule)
	var ruleOrder []string
	results := make([]sarifResult, 0, len(findings))

	for _, f := range findings {
		ruleID := fmt.Sprintf("%s/%s", f.CheckerName, f.RuleName)
		if _, ok := rulesMap[ruleID]; !ok {
			rulesMap[ruleID] = sarifRule{
				ID:               ruleID,
				Name:             f.RuleName,
				ShortDescription: sarifMessage{Text: f.RuleName},
				DefaultConfig:    sarifDefaultConfig{Level: severityToSARIFLevel(f.Severity)},
			}
			ruleOrder = append(ruleOrder, ruleID)
		}

		result := sarifResult{
			RuleID:  ruleID,
			Level:   severityToSARIFLevel(f.Severity),
			Message: sarifMessage{Text: f.Message},
		}

		if f.FilePath != "" {
			loc := sarifLocation{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: f.FilePath},
				},
			}
			if f.Line > 0 {
				loc.PhysicalLocation.Region = &sarifRegion{
					StartLine:   f.Line,
					StartColumn: f.Column,
				}
			}
			result.Locations = []sarifLocation{loc}
		}

		if f.Suggestion != "" {
			result.Fixes = []sarifFix{{Description: sarifMessage{Text: f.Suggestion}}}
		}

		results = append(results, result)
	}

	rules := make([]sarifRule, 0, len(ruleOrder))
	for _, id := range ruleOrder {
		rules = append(rules, rulesMap[id])
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "facet",
						Version:        toolVersion,
						InformationURI: "https://github.com/dshills/facet",
						Rules:          rules,
					},
				},
				Results: results,
			},
		},
	}
}

// severityToSARIFLevel maps finding severity to a SARIF level.
func severityToSARIFLevel(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return "error"
	case review.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// GitLab Code Quality report schema (codeclimate subset understood by the
// GitLab merge request widget).

type gitlabIssue struct {
	Description string         `json:"description"`
	CheckName   string         `json:"check_name"`
	Fingerprint string         `json:"fingerprint"`
	Severity    string         `json:"severity"`
	Location    gitlabLocation `json:"location"`
}

type gitlabLocation struct {
	Path  string      `json:"path"`
	Lines gitlabLines `json:"lines"`
}

type gitlabLines struct {
	Begin int `json:"begin"`
}

func buildGitLabCI(findings []review.Finding) []gitlabIssue {
	issues := make([]gitlabIssue, 0, len(findings))
	for _, f := range findings {
		issues = append(issues, gitlabIssue{
			Description: f.Message,
			CheckName:   f.RuleName,
			Fingerprint: gitlabFingerprint(f),
			Severity:    severityToGitLab(f.Severity),
			Location: gitlabLocation{
				Path:  f.FilePath,
				Lines: gitlabLines{Begin: f.Line},
			},
		})
	}
	return issues
}

// gitlabFingerprint is a stable hash of rule name, file path, and line so the
// widget can track an issue across pipeline runs.
func gitlabFingerprint(f review.Finding) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d", f.RuleName, f.FilePath, f.Line))
	return fmt.Sprintf("%x", h[:16])
}

func severityToGitLab(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return "major"
	case review.SeverityWarning:
		return "minor"
	default:
		return "info"
	}
}

// metricsReport aggregates counts without per-finding detail.

type metricsReport struct {
	TotalIssues    int            `json:"total_issues"`
	SeverityCounts map[string]int `json:"severity_counts"`
	CheckerCounts  map[string]int `json:"checker_counts"`
	FilesAnalyzed  int            `json:"files_analyzed"`
	AnalysisType   string         `json:"analysis_type,omitempty"`
	RepositoryURL  string         `json:"repository_url,omitempty"`
	RunID          string         `json:"run_id,omitempty"`
	DurationMs     int64          `json:"duration_ms,omitempty"`
}

func (j *JSONFormatter) buildMetrics(findings []review.Finding, octx review.OutputContext) metricsReport {
	summary := review.ComputeSummary(findings)
	report := metricsReport{
		TotalIssues: summary.Total,
		SeverityCounts: map[string]int{
			"error":      summary.Counts.Error,
			"warning":    summary.Counts.Warning,
			"suggestion": summary.Counts.Suggestion,
		},
		CheckerCounts: review.CountByChecker(findings),
		FilesAnalyzed: octx.FilesAnalyzed,
	}
	if j.cfg.IncludeMetadata {
		report.AnalysisType = octx.AnalysisType
		report.RepositoryURL = octx.RepositoryURL
		report.RunID = octx.RunID
		report.DurationMs = octx.ExecutionTime.Milliseconds()
	}
	return report
}
