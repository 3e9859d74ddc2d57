// Package config parses caller-supplied generic mappings and YAML documents
// into formatter and notification configuration. It is the input boundary for
// the rendering core: recognized keys are applied, unknown keys are ignored,
// and invalid values are errors.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dshills/facet/internal/notify"
	"github.com/dshills/facet/internal/output"
	"github.com/dshills/facet/internal/review"
)

// FormatterFromMap builds a FormatterConfig from a generic mapping.
//
// Recognized keys: show_suggestions, show_line_numbers, include_metadata
// (booleans) and options (string-to-string mapping of renderer-specific
// flags).
func FormatterFromMap(m map[string]any) (*output.FormatterConfig, error) {
	cfg := output.DefaultFormatterConfig()

	if v, ok := m["show_suggestions"]; ok {
		b, err := asBool(v, "show_suggestions")
		if err != nil {
			return nil, err
		}
		cfg.ShowSuggestions = b
	}
	if v, ok := m["show_line_numbers"]; ok {
		b, err := asBool(v, "show_line_numbers")
		if err != nil {
			return nil, err
		}
		cfg.ShowLineNumbers = b
	}
	if v, ok := m["include_metadata"]; ok {
		b, err := asBool(v, "include_metadata")
		if err != nil {
			return nil, err
		}
		cfg.IncludeMetadata = b
	}
	if v, ok := m["options"]; ok {
		opts, err := asStringMap(v, "options")
		if err != nil {
			return nil, err
		}
		cfg.Options = opts
	}

	return cfg, nil
}

// NotificationFromMap builds a notification Config from a generic mapping.
//
// Recognized keys: enabled (bool), webhook_url, channel, severity_threshold
// (suggestion|warning|error), max_issues (int >= 1), mention_users (string
// list).
func NotificationFromMap(m map[string]any) (notify.Config, error) {
	cfg := notify.DefaultConfig()

	if v, ok := m["enabled"]; ok {
		b, err := asBool(v, "enabled")
		if err != nil {
			return cfg, err
		}
		cfg.Enabled = b
	}
	if v, ok := m["webhook_url"]; ok {
		s, err := asString(v, "webhook_url")
		if err != nil {
			return cfg, err
		}
		cfg.WebhookURL = s
	}
	if v, ok := m["channel"]; ok {
		s, err := asString(v, "channel")
		if err != nil {
			return cfg, err
		}
		cfg.Channel = s
	}
	if v, ok := m["severity_threshold"]; ok {
		s, err := asString(v, "severity_threshold")
		if err != nil {
			return cfg, err
		}
		sev, err := review.ParseSeverity(s)
		if err != nil {
			return cfg, fmt.Errorf("severity_threshold: %w", err)
		}
		cfg.SeverityThreshold = sev
	}
	if v, ok := m["max_issues"]; ok {
		n, err := asInt(v, "max_issues")
		if err != nil {
			return cfg, err
		}
		if n < 1 {
			return cfg, fmt.Errorf("max_issues must be >= 1, got %d", n)
		}
		cfg.MaxIssues = n
	}
	if v, ok := m["mention_users"]; ok {
		users, err := asStringList(v, "mention_users")
		if err != nil {
			return cfg, err
		}
		cfg.MentionUsers = users
	}

	return cfg, nil
}

// LoadNotificationYAML parses a YAML document into a notification Config.
func LoadNotificationYAML(data []byte) (notify.Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return notify.DefaultConfig(), fmt.Errorf("parsing notification config: %w", err)
	}
	return NotificationFromMap(m)
}

// LoadFormatterYAML parses a YAML document into a FormatterConfig.
func LoadFormatterYAML(data []byte) (*output.FormatterConfig, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing formatter config: %w", err)
	}
	return FormatterFromMap(m)
}

func asBool(v any, key string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %T", key, v)
	}
	return b, nil
}

func asString(v any, key string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

func asInt(v any, key string) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%s must be an integer, got %v", key, v)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, v)
	}
}

func asStringList(v any, key string) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s entries must be strings, got %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a string list, got %T", key, v)
	}
}

func asStringMap(v any, key string) (map[string]string, error) {
	switch m := v.(type) {
	case map[string]string:
		return m, nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, item := range m {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s values must be strings, got %T", key, item)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a string mapping, got %T", key, v)
	}
}
