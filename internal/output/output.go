package output

import (
	"github.com/dshills/facet/internal/review"
)

// FormatterConfig carries rendering policy flags shared by all formatters.
// Instances are read-only once constructed and may be shared across
// concurrently executing formatters.
type FormatterConfig struct {
	ShowSuggestions bool              `json:"showSuggestions" yaml:"show_suggestions"`
	ShowLineNumbers bool              `json:"showLineNumbers" yaml:"show_line_numbers"`
	IncludeMetadata bool              `json:"includeMetadata" yaml:"include_metadata"`
	Options         map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// DefaultFormatterConfig returns the config used when a request supplies none.
func DefaultFormatterConfig() *FormatterConfig {
	return &FormatterConfig{
		ShowSuggestions: true,
		ShowLineNumbers: true,
		IncludeMetadata: true,
	}
}

// Option returns a config option value, falling back to def when unset.
func (c *FormatterConfig) Option(key, def string) string {
	if c == nil || c.Options == nil {
		return def
	}
	if v, ok := c.Options[key]; ok {
		return v
	}
	return def
}

// FormattedOutput is the result of a successful render.
type FormattedOutput struct {
	Content    string            `json:"content"`
	SizeBytes  int               `json:"sizeBytes"`
	FormatType string            `json:"formatType"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// NewFormattedOutput wraps rendered content, computing its encoded size.
func NewFormattedOutput(formatType, content string, metadata map[string]string) *FormattedOutput {
	return &FormattedOutput{
		Content:    content,
		SizeBytes:  len(content),
		FormatType: formatType,
		Metadata:   metadata,
	}
}

// Formatter converts findings plus context into one formatted artifact.
// Implementations are pure: no I/O, no mutation of their arguments.
type Formatter interface {
	Format(findings []review.Finding, octx review.OutputContext, subFormat string, opts map[string]string) (*FormattedOutput, error)
}

// OutputRequest is one unit of rendering work.
type OutputRequest struct {
	FormatType string               `json:"formatType"`
	SubFormat  string               `json:"subFormat,omitempty"`
	Findings   []review.Finding     `json:"findings"`
	Context    review.OutputContext `json:"context"`
	Config     *FormatterConfig     `json:"config,omitempty"`
	Options    map[string]string    `json:"options,omitempty"`
}

// OutputResponse wraps either a FormattedOutput or an error description.
// Exactly one response is produced per request.
type OutputResponse struct {
	Success  bool              `json:"success"`
	Output   *FormattedOutput  `json:"output,omitempty"`
	Error    string            `json:"error,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
