package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/facet/internal/review"
)

func TestFormatterFromMap(t *testing.T) {
	cfg, err := FormatterFromMap(map[string]any{
		"show_suggestions":  false,
		"show_line_numbers": true,
		"include_metadata":  false,
		"options":           map[string]any{"theme": "dark"},
	})
	require.NoError(t, err)
	assert.False(t, cfg.ShowSuggestions)
	assert.True(t, cfg.ShowLineNumbers)
	assert.False(t, cfg.IncludeMetadata)
	assert.Equal(t, "dark", cfg.Option("theme", ""))
}

func TestFormatterFromMapDefaults(t *testing.T) {
	cfg, err := FormatterFromMap(map[string]any{})
	require.NoError(t, err)
	assert.True(t, cfg.ShowSuggestions)
	assert.True(t, cfg.ShowLineNumbers)
	assert.True(t, cfg.IncludeMetadata)
}

func TestFormatterFromMapUnknownKeysIgnored(t *testing.T) {
	cfg, err := FormatterFromMap(map[string]any{"unrecognized": 42})
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestFormatterFromMapInvalidType(t *testing.T) {
	_, err := FormatterFromMap(map[string]any{"show_suggestions": "yes"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "show_suggestions")
}

func TestNotificationFromMap(t *testing.T) {
	cfg, err := NotificationFromMap(map[string]any{
		"enabled":            true,
		"webhook_url":        "https://hooks.example.com/x",
		"channel":            "#reviews",
		"severity_threshold": "error",
		"max_issues":         3,
		"mention_users":      []any{"@dev", "@lead"},
	})
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "https://hooks.example.com/x", cfg.WebhookURL)
	assert.Equal(t, "#reviews", cfg.Channel)
	assert.Equal(t, review.SeverityError, cfg.SeverityThreshold)
	assert.Equal(t, 3, cfg.MaxIssues)
	assert.Equal(t, []string{"@dev", "@lead"}, cfg.MentionUsers)
}

func TestNotificationFromMapDefaults(t *testing.T) {
	cfg, err := NotificationFromMap(map[string]any{})
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, review.SeverityWarning, cfg.SeverityThreshold)
	assert.Equal(t, 5, cfg.MaxIssues)
}

func TestNotificationFromMapInvalidSeverity(t *testing.T) {
	_, err := NotificationFromMap(map[string]any{"severity_threshold": "critical"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "severity_threshold")
}

func TestNotificationFromMapInvalidMaxIssues(t *testing.T) {
	_, err := NotificationFromMap(map[string]any{"max_issues": 0})
	require.Error(t, err)
	assert.ErrorContains(t, err, "max_issues")
}

func TestLoadNotificationYAML(t *testing.T) {
	doc := []byte(`
enabled: true
webhook_url: https://hooks.example.com/services/T/B/X
severity_threshold: warning
max_issues: 5
mention_users:
  - "@developer"
  - "@team-lead"
`)
	cfg, err := LoadNotificationYAML(doc)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, review.SeverityWarning, cfg.SeverityThreshold)
	assert.Equal(t, []string{"@developer", "@team-lead"}, cfg.MentionUsers)
}

func TestLoadNotificationYAMLInvalid(t *testing.T) {
	_, err := LoadNotificationYAML([]byte("enabled: [not a bool"))
	require.Error(t, err)
}

func TestLoadFormatterYAML(t *testing.T) {
	doc := []byte(`
show_suggestions: true
include_metadata: false
options:
  theme: dark
  color: never
`)
	cfg, err := LoadFormatterYAML(doc)
	require.NoError(t, err)
	assert.True(t, cfg.ShowSuggestions)
	assert.False(t, cfg.IncludeMetadata)
	assert.Equal(t, "never", cfg.Option("color", ""))
}
