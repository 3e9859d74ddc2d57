package output

import (
	"html/template"
	"strings"

	"github.com/dshills/facet/internal/review"
)

// HTML sub-formats.
const (
	HTMLDashboard = "dashboard"
)

// HTMLFormatter renders findings as a self-contained HTML dashboard. All
// styles and scripts are inlined so the artifact renders without network
// access.
type HTMLFormatter struct {
	cfg *FormatterConfig
}

func (h *HTMLFormatter) Format(findings []review.Finding, octx review.OutputContext, subFormat string, opts map[string]string) (*FormattedOutput, error) {
	if subFormat == "" {
		subFormat = HTMLDashboard
	}
	if subFormat != HTMLDashboard {
		return nil, &UnsupportedSubFormatError{Format: "html", SubFormat: subFormat}
	}

	themeName := opts["theme"]
	if themeName == "" {
		themeName = h.cfg.Option("theme", "default")
	}
	theme, ok := htmlThemes[themeName]
	if !ok {
		// Unknown themes fall back rather than fail.
		themeName = "default"
		theme = htmlThemes[themeName]
	}

	data := dashboardData{
		Theme:           theme,
		Summary:         review.ComputeSummary(findings),
		Findings:        findings,
		Context:         octx,
		ShowSuggestions: h.cfg.ShowSuggestions,
		IncludeMetadata: h.cfg.IncludeMetadata,
	}

	var b strings.Builder
	if err := dashboardTemplate.Execute(&b, data); err != nil {
		return nil, &RenderError{Format: "html", Reason: "executing dashboard template", Err: err}
	}

	return NewFormattedOutput("html", b.String(), map[string]string{
		"subFormat": subFormat,
		"theme":     themeName,
	}), nil
}

// htmlTheme holds the inline color palette for a dashboard.
type htmlTheme struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Error      string
	Warning    string
	Suggestion string
}

var htmlThemes = map[string]htmlTheme{
	"default": {
		Background: "#f5f6f8",
		Surface:    "#ffffff",
		Text:       "#1f2430",
		Muted:      "#6b7280",
		Error:      "#dc2626",
		Warning:    "#d97706",
		Suggestion: "#2563eb",
	},
	"dark": {
		Background: "#111827",
		Surface:    "#1f2937",
		Text:       "#f9fafb",
		Muted:      "#9ca3af",
		Error:      "#f87171",
		Warning:    "#fbbf24",
		Suggestion: "#60a5fa",
	},
}

type dashboardData struct {
	Theme           htmlTheme
	Summary         review.Summary
	Findings        []review.Finding
	Context         review.OutputContext
	ShowSuggestions bool
	IncludeMetadata bool
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Code Review Dashboard</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; background: {{.Theme.Background}}; color: {{.Theme.Text}}; }
.wrap { max-width: 960px; margin: 0 auto; padding: 24px; }
.cards { display: flex; gap: 16px; margin-bottom: 24px; }
.card { flex: 1; background: {{.Theme.Surface}}; border-radius: 8px; padding: 16px; text-align: center; }
.card .num { font-size: 28px; font-weight: 700; }
.card .label { color: {{.Theme.Muted}}; font-size: 13px; text-transform: uppercase; }
.num.error { color: {{.Theme.Error}}; }
.num.warning { color: {{.Theme.Warning}}; }
.num.suggestion { color: {{.Theme.Suggestion}}; }
.filters button { margin-right: 8px; padding: 6px 12px; border: none; border-radius: 6px; cursor: pointer; background: {{.Theme.Surface}}; color: {{.Theme.Text}}; }
.filters button.active { outline: 2px solid {{.Theme.Suggestion}}; }
table { width: 100%; border-collapse: collapse; background: {{.Theme.Surface}}; border-radius: 8px; margin-top: 16px; }
th, td { text-align: left; padding: 10px 12px; border-bottom: 1px solid {{.Theme.Background}}; font-size: 14px; }
th { color: {{.Theme.Muted}}; text-transform: uppercase; font-size: 12px; }
.sev { font-weight: 700; }
.sev.error { color: {{.Theme.Error}}; }
.sev.warning { color: {{.Theme.Warning}}; }
.sev.suggestion { color: {{.Theme.Suggestion}}; }
.meta { color: {{.Theme.Muted}}; font-size: 13px; margin-top: 16px; }
</style>
</head>
<body>
<div class="wrap">
<h1>Code Review Dashboard</h1>
<div class="cards">
<div class="card"><div class="num">{{.Summary.Total}}</div><div class="label">Total</div></div>
<div class="card"><div class="num error">{{.Summary.Counts.Error}}</div><div class="label">Errors</div></div>
<div class="card"><div class="num warning">{{.Summary.Counts.Warning}}</div><div class="label">Warnings</div></div>
<div class="card"><div class="num suggestion">{{.Summary.Counts.Suggestion}}</div><div class="label">Suggestions</div></div>
</div>
<div class="filters">
<button class="active" data-sev="all">All</button>
<button data-sev="error">Errors</button>
<button data-sev="warning">Warnings</button>
<button data-sev="suggestion">Suggestions</button>
</div>
<table>
<thead><tr><th>Severity</th><th>Rule</th><th>Location</th><th>Message</th>{{if .ShowSuggestions}}<th>Suggestion</th>{{end}}</tr></thead>
<tbody>
{{range .Findings}}<tr data-sev="{{.Severity}}">
<td class="sev {{.Severity}}">{{.Severity}}</td>
<td>{{.CheckerName}}/{{.RuleName}}</td>
<td>{{.Location}}</td>
<td>{{.Message}}</td>
{{if $.ShowSuggestions}}<td>{{.Suggestion}}</td>{{end}}
</tr>
{{end}}</tbody>
</table>
{{if .IncludeMetadata}}<p class="meta">
{{.Context.FilesAnalyzed}} files analyzed{{if .Context.RepositoryURL}} in {{.Context.RepositoryURL}}{{end}}{{if .Context.PRNumber}} (PR #{{.Context.PRNumber}}){{end}}{{if .Context.RunID}} · run {{.Context.RunID}}{{end}}
</p>{{end}}
<script>
document.querySelectorAll(".filters button").forEach(function(btn) {
  btn.addEventListener("click", function() {
    document.querySelectorAll(".filters button").forEach(function(b) { b.classList.remove("active"); });
    btn.classList.add("active");
    var sev = btn.getAttribute("data-sev");
    document.querySelectorAll("tbody tr").forEach(function(row) {
      row.style.display = (sev === "all" || row.getAttribute("data-sev") === sev) ? "" : "none";
    });
  });
});
</script>
</div>
</body>
</html>
`))
