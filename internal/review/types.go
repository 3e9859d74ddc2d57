package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Severity represents the severity level of a finding.
type Severity string

const (
	SeveritySuggestion Severity = "suggestion"
	SeverityWarning    Severity = "warning"
	SeverityError      Severity = "error"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeveritySuggestion:
		return 1
	default:
		return 0
	}
}

// MeetsThreshold returns true if severity is at or above the threshold.
func MeetsThreshold(s, threshold Severity) bool {
	if threshold == "" {
		return false
	}
	return SeverityRank(s) >= SeverityRank(threshold)
}

// ParseSeverity converts a config string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeveritySuggestion, SeverityWarning, SeverityError:
		return Severity(s), nil
	default:
		return "", fmt.Errorf("unknown severity %q (want suggestion, warning, or error)", s)
	}
}

// Finding represents a single code review finding.
type Finding struct {
	RuleName    string   `json:"ruleName"`
	CheckerName string   `json:"checkerName"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	FilePath    string   `json:"filePath,omitempty"`
	Line        int      `json:"line,omitempty"`
	Column      int      `json:"column,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// Location renders the finding's file position as path, path:line, or
// path:line:col depending on which fields are set.
func (f Finding) Location() string {
	if f.FilePath == "" {
		return ""
	}
	if f.Line <= 0 {
		return f.FilePath
	}
	if f.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", f.FilePath, f.Line, f.Column)
	}
	return fmt.Sprintf("%s:%d", f.FilePath, f.Line)
}

// OutputContext carries ambient metadata for a render.
type OutputContext struct {
	AnalysisType  string        `json:"analysisType,omitempty"`
	FilesAnalyzed int           `json:"filesAnalyzed"`
	RepositoryURL string        `json:"repositoryUrl,omitempty"`
	PRNumber      int           `json:"prNumber,omitempty"`
	Timestamp     time.Time     `json:"timestamp,omitempty"`
	ExecutionTime time.Duration `json:"executionTime,omitempty"`
	RunID         string        `json:"runId,omitempty"`
}

// NewOutputContext returns a context stamped with the current time and a
// fresh run ID.
func NewOutputContext(analysisType string, filesAnalyzed int) OutputContext {
	return OutputContext{
		AnalysisType:  analysisType,
		FilesAnalyzed: filesAnalyzed,
		Timestamp:     time.Now(),
		RunID:         uuid.NewString(),
	}
}

// SeverityCounts holds counts by severity level.
type SeverityCounts struct {
	Suggestion int `json:"suggestion"`
	Warning    int `json:"warning"`
	Error      int `json:"error"`
}

// Summary provides an overview of findings.
type Summary struct {
	Total           int            `json:"total"`
	Counts          SeverityCounts `json:"counts"`
	HighestSeverity Severity       `json:"highestSeverity,omitempty"`
}

// ComputeSummary calculates the summary from findings.
func ComputeSummary(findings []Finding) Summary {
	var s Summary
	s.Total = len(findings)
	for _, f := range findings {
		switch f.Severity {
		case SeveritySuggestion:
			s.Counts.Suggestion++
		case SeverityWarning:
			s.Counts.Warning++
		case SeverityError:
			s.Counts.Error++
		}
		if SeverityRank(f.Severity) > SeverityRank(s.HighestSeverity) {
			s.HighestSeverity = f.Severity
		}
	}
	return s
}

// CountByChecker tallies findings per checker name.
func CountByChecker(findings []Finding) map[string]int {
	m := make(map[string]int)
	for _, f := range findings {
		m[f.CheckerName]++
	}
	return m
}
