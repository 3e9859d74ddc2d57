package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/facet/internal/review"
)

// Terminal sub-formats.
const (
	TerminalDetailed = "detailed"
	TerminalCompact  = "compact"
)

// severity colors follow conventional traffic-light semantics.
var (
	termErrorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	termWarningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	termSuggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	termHeaderStyle     = lipgloss.NewStyle().Bold(true)
	termMutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TerminalFormatter renders findings as plain or ANSI-styled text.
type TerminalFormatter struct {
	cfg *FormatterConfig
}

func (t *TerminalFormatter) Format(findings []review.Finding, octx review.OutputContext, subFormat string, opts map[string]string) (*FormattedOutput, error) {
	if subFormat == "" {
		subFormat = TerminalDetailed
	}

	color := t.cfg.Option("color", "auto") != "never"
	if opts["color"] == "never" {
		color = false
	}

	var content string
	switch subFormat {
	case TerminalDetailed:
		content = t.renderDetailed(findings, octx, color)
	case TerminalCompact:
		content = t.renderCompact(findings, color)
	default:
		return nil, &UnsupportedSubFormatError{Format: "terminal", SubFormat: subFormat}
	}

	return NewFormattedOutput("terminal", content, map[string]string{
		"subFormat": subFormat,
	}), nil
}

func (t *TerminalFormatter) renderDetailed(findings []review.Finding, octx review.OutputContext, color bool) string {
	var b strings.Builder

	summary := review.ComputeSummary(findings)
	header := fmt.Sprintf("Code Review — %d finding(s)", summary.Total)
	if summary.Total > 0 {
		header += fmt.Sprintf(" (%d error, %d warning, %d suggestion)",
			summary.Counts.Error, summary.Counts.Warning, summary.Counts.Suggestion)
	}
	b.WriteString(styled(termHeaderStyle, header, color))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n")

	if t.cfg.IncludeMetadata {
		b.WriteString(renderContextLines(octx))
	}

	if summary.Total == 0 {
		b.WriteString("\nNo issues found. Looks good!\n")
		return b.String()
	}

	for _, f := range findings {
		b.WriteString("\n")
		b.WriteString(styled(severityStyle(f.Severity), strings.ToUpper(string(f.Severity)), color))
		b.WriteString(fmt.Sprintf(" %s (%s)\n", f.RuleName, f.CheckerName))
		if loc := t.findingLocation(f); loc != "" {
			b.WriteString(styled(termMutedStyle, "  "+loc, color))
			b.WriteString("\n")
		}
		b.WriteString("  " + f.Message + "\n")
		if t.cfg.ShowSuggestions && f.Suggestion != "" {
			b.WriteString("  Suggestion: " + f.Suggestion + "\n")
		}
	}

	return b.String()
}

// renderCompact emits exactly one line per finding, in input order.
func (t *TerminalFormatter) renderCompact(findings []review.Finding, color bool) string {
	var b strings.Builder
	for _, f := range findings {
		b.WriteString(styled(severityStyle(f.Severity), string(f.Severity), color))
		b.WriteString(": " + f.Message)
		if loc := t.findingLocation(f); loc != "" {
			b.WriteString(" (" + loc + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (t *TerminalFormatter) findingLocation(f review.Finding) string {
	if !t.cfg.ShowLineNumbers {
		return f.FilePath
	}
	return f.Location()
}

func renderContextLines(octx review.OutputContext) string {
	var b strings.Builder
	if octx.AnalysisType != "" {
		fmt.Fprintf(&b, "Analysis: %s\n", octx.AnalysisType)
	}
	if octx.RepositoryURL != "" {
		fmt.Fprintf(&b, "Repository: %s\n", octx.RepositoryURL)
	}
	if octx.PRNumber > 0 {
		fmt.Fprintf(&b, "Pull request: #%d\n", octx.PRNumber)
	}
	fmt.Fprintf(&b, "Files analyzed: %d\n", octx.FilesAnalyzed)
	if octx.ExecutionTime > 0 {
		fmt.Fprintf(&b, "Duration: %s\n", octx.ExecutionTime)
	}
	return b.String()
}

func severityStyle(s review.Severity) lipgloss.Style {
	switch s {
	case review.SeverityError:
		return termErrorStyle
	case review.SeverityWarning:
		return termWarningStyle
	default:
		return termSuggestionStyle
	}
}

func styled(style lipgloss.Style, s string, color bool) string {
	if !color {
		return s
	}
	return style.Render(s)
}
