package output

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/dshills/facet/internal/review"
)

// TemplateFormatter applies a named built-in template or caller-supplied
// template text to the findings. Templates see only the render context below;
// text/template gives them no file, network, or process access.
type TemplateFormatter struct {
	cfg *FormatterConfig
}

// TemplateContext is the data exposed to templates.
type TemplateContext struct {
	Summary TemplateSummary
	Results []review.Finding
	Context review.OutputContext
}

// TemplateSummary carries the aggregate counts templates commonly need.
type TemplateSummary struct {
	TotalIssues     int
	FilesAnalyzed   int
	ErrorCount      int
	WarningCount    int
	SuggestionCount int
}

var builtinTemplates = map[string]string{
	"summary_only": `Code review: {{.Summary.TotalIssues}} issue(s) in {{.Summary.FilesAnalyzed}} file(s) ({{.Summary.ErrorCount}} error, {{.Summary.WarningCount}} warning, {{.Summary.SuggestionCount}} suggestion)
`,
	"issue_list": `Found {{.Summary.TotalIssues}} issue(s):
{{range .Results}}- {{.Severity}}: {{.Message}}{{if .FilePath}} ({{.Location}}){{end}}
{{end}}`,
}

func (t *TemplateFormatter) Format(findings []review.Finding, octx review.OutputContext, subFormat string, opts map[string]string) (*FormattedOutput, error) {
	name := opts["template_name"]
	if name == "" {
		name = subFormat
	}
	if name == "" {
		name = "summary_only"
	}

	text, ok := builtinTemplates[name]
	if content := opts["template_content"]; content != "" {
		text = content
		ok = true
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, &RenderError{Format: "template", Reason: "parsing template " + name, Err: err}
	}

	summary := review.ComputeSummary(findings)
	data := TemplateContext{
		Summary: TemplateSummary{
			TotalIssues:     summary.Total,
			FilesAnalyzed:   octx.FilesAnalyzed,
			ErrorCount:      summary.Counts.Error,
			WarningCount:    summary.Counts.Warning,
			SuggestionCount: summary.Counts.Suggestion,
		},
		Results: findings,
		Context: octx,
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return nil, &RenderError{Format: "template", Reason: "executing template " + name, Err: err}
	}

	return NewFormattedOutput("template", b.String(), map[string]string{
		"template": name,
	}), nil
}

// BuiltinTemplates returns the names of the built-in templates.
func BuiltinTemplates() []string {
	names := make([]string, 0, len(builtinTemplates))
	for name := range builtinTemplates {
		names = append(names, name)
	}
	return names
}
