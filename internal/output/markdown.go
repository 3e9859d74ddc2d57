package output

import (
	"fmt"
	"strings"

	"github.com/dshills/facet/internal/review"
)

// Markdown sub-formats. pr_comment groups findings by severity under
// collapsible sections; github and gitlab are flat lists differing only in
// link syntax and emoji conventions.
const (
	MarkdownPRComment = "pr_comment"
	MarkdownGitHub    = "github"
	MarkdownGitLab    = "gitlab"
)

// MarkdownFormatter renders findings as GitHub/GitLab-flavored Markdown.
type MarkdownFormatter struct {
	cfg *FormatterConfig
}

func (m *MarkdownFormatter) Format(findings []review.Finding, octx review.OutputContext, subFormat string, opts map[string]string) (*FormattedOutput, error) {
	if subFormat == "" {
		subFormat = MarkdownPRComment
	}

	var content string
	switch subFormat {
	case MarkdownPRComment:
		content = m.renderPRComment(findings, octx)
	case MarkdownGitHub:
		content = m.renderList(findings, octx, gitHubDialect)
	case MarkdownGitLab:
		content = m.renderList(findings, octx, gitLabDialect)
	default:
		return nil, &UnsupportedSubFormatError{Format: "markdown", SubFormat: subFormat}
	}

	return NewFormattedOutput("markdown", content, map[string]string{
		"subFormat": subFormat,
	}), nil
}

func (m *MarkdownFormatter) renderPRComment(findings []review.Finding, octx review.OutputContext) string {
	var b strings.Builder

	summary := review.ComputeSummary(findings)
	b.WriteString("## Code Review Results\n\n")

	b.WriteString("| Severity | Count |\n")
	b.WriteString("|----------|-------|\n")
	fmt.Fprintf(&b, "| Error | %d |\n", summary.Counts.Error)
	fmt.Fprintf(&b, "| Warning | %d |\n", summary.Counts.Warning)
	fmt.Fprintf(&b, "| Suggestion | %d |\n", summary.Counts.Suggestion)
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", summary.Total)

	if summary.Total == 0 {
		b.WriteString("No issues found. :white_check_mark:\n")
		return b.String()
	}

	grouped := groupBySeverity(findings)
	for _, sev := range []review.Severity{review.SeverityError, review.SeverityWarning, review.SeveritySuggestion} {
		group := grouped[sev]
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(&b, "<details>\n<summary>%s %s (%d)</summary>\n\n",
			gitHubDialect.icon(sev), strings.ToUpper(string(sev)), len(group))

		for _, f := range group {
			m.renderFinding(&b, f, gitHubDialect)
		}

		b.WriteString("</details>\n\n")
	}

	if m.cfg.IncludeMetadata {
		b.WriteString(m.renderFooter(octx))
	}
	return b.String()
}

func (m *MarkdownFormatter) renderList(findings []review.Finding, octx review.OutputContext, d mdDialect) string {
	var b strings.Builder

	summary := review.ComputeSummary(findings)
	fmt.Fprintf(&b, "## Code Review Results\n\n")
	fmt.Fprintf(&b, "%d finding(s): %d error, %d warning, %d suggestion\n\n",
		summary.Total, summary.Counts.Error, summary.Counts.Warning, summary.Counts.Suggestion)

	if summary.Total == 0 {
		fmt.Fprintf(&b, "No issues found. %s\n", d.clean)
		return b.String()
	}

	for _, f := range findings {
		m.renderFinding(&b, f, d)
	}

	if m.cfg.IncludeMetadata {
		b.WriteString(m.renderFooter(octx))
	}
	return b.String()
}

func (m *MarkdownFormatter) renderFinding(b *strings.Builder, f review.Finding, d mdDialect) {
	fmt.Fprintf(b, "%s **%s** `%s/%s`",
		d.icon(f.Severity), strings.ToUpper(string(f.Severity)),
		codeSpanSafe(f.CheckerName), codeSpanSafe(f.RuleName))
	if loc := f.Location(); loc != "" {
		fmt.Fprintf(b, " at `%s`", codeSpanSafe(loc))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(b, "%s\n\n", EscapeMarkdown(f.Message))
	if m.cfg.ShowSuggestions && f.Suggestion != "" {
		fmt.Fprintf(b, "> **Suggestion:** %s\n\n", EscapeMarkdown(f.Suggestion))
	}
}

func (m *MarkdownFormatter) renderFooter(octx review.OutputContext) string {
	var b strings.Builder
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "*%d files analyzed", octx.FilesAnalyzed)
	if octx.RepositoryURL != "" {
		fmt.Fprintf(&b, " in %s", octx.RepositoryURL)
	}
	if octx.PRNumber > 0 {
		fmt.Fprintf(&b, " (PR #%d)", octx.PRNumber)
	}
	if octx.ExecutionTime > 0 {
		fmt.Fprintf(&b, " in %s", octx.ExecutionTime)
	}
	b.WriteString("*\n")
	return b.String()
}

// mdDialect captures the cosmetic differences between GitHub- and
// GitLab-flavored output.
type mdDialect struct {
	errorIcon      string
	warningIcon    string
	suggestionIcon string
	clean          string
}

var gitHubDialect = mdDialect{
	errorIcon:      ":red_circle:",
	warningIcon:    ":orange_circle:",
	suggestionIcon: ":large_blue_circle:",
	clean:          ":white_check_mark:",
}

var gitLabDialect = mdDialect{
	errorIcon:      "🔴",
	warningIcon:    "🟠",
	suggestionIcon: "🔵",
	clean:          "✅",
}

func (d mdDialect) icon(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return d.errorIcon
	case review.SeverityWarning:
		return d.warningIcon
	default:
		return d.suggestionIcon
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
	`[`, `\[`,
	`]`, `\]`,
	`#`, `\#`,
	`~`, `\~`,
)

// EscapeMarkdown neutralizes Markdown control characters in user-supplied
// text so a hostile message cannot break the surrounding markup.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// codeSpanSafe makes an identifier safe for embedding in a backtick code
// span, where backslash escapes do not apply.
func codeSpanSafe(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}

func groupBySeverity(findings []review.Finding) map[review.Severity][]review.Finding {
	m := make(map[review.Severity][]review.Finding)
	for _, f := range findings {
		m[f.Severity] = append(m[f.Severity], f)
	}
	return m
}
