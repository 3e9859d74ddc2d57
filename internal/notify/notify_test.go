package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/facet/internal/review"
)

func testFindings() []review.Finding {
	return []review.Finding{
		{RuleName: "hardcoded_secrets", CheckerName: "security", Severity: review.SeverityError, Message: "Hardcoded API key found", FilePath: "settings.go", Line: 42},
		{RuleName: "max_function_length", CheckerName: "complexity", Severity: review.SeverityWarning, Message: "Function too long", FilePath: "parser.go", Line: 120},
		{RuleName: "unused_variable", CheckerName: "variables", Severity: review.SeveritySuggestion, Message: "Unused variable", FilePath: "helper.go", Line: 28},
	}
}

func enabledConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.WebhookURL = "https://hooks.example.com/services/T000/B000/XXX"
	return cfg
}

func TestShouldNotify(t *testing.T) {
	tests := []struct {
		name      string
		enabled   bool
		threshold review.Severity
		findings  []review.Finding
		want      bool
	}{
		{"disabled", false, review.SeveritySuggestion, testFindings(), false},
		{"no findings", true, review.SeveritySuggestion, nil, false},
		{"meets threshold", true, review.SeverityWarning, testFindings(), true},
		{"exactly at threshold", true, review.SeverityError, testFindings(), true},
		{
			"all below threshold", true, review.SeverityError,
			[]review.Finding{{Severity: review.SeverityWarning}, {Severity: review.SeveritySuggestion}},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := enabledConfig()
			cfg.Enabled = tt.enabled
			cfg.SeverityThreshold = tt.threshold
			assert.Equal(t, tt.want, ShouldNotify(tt.findings, cfg))
		})
	}
}

func TestBuildMessageTopN(t *testing.T) {
	cfg := enabledConfig()
	cfg.MaxIssues = 1

	msg := BuildMessage(testFindings(), cfg, review.OutputContext{})

	assert.Equal(t, 1, msg.IssuesIncluded)
	assert.Equal(t, 3, msg.TotalIssues)
	assert.Contains(t, msg.Text, "Hardcoded API key found")
	assert.NotContains(t, msg.Text, "Function too long")
	assert.Contains(t, msg.Text, "and 2 more")
}

func TestBuildMessageStableTieBreak(t *testing.T) {
	findings := []review.Finding{
		{Severity: review.SeverityWarning, Message: "first warning"},
		{Severity: review.SeverityWarning, Message: "second warning"},
		{Severity: review.SeverityError, Message: "the error"},
	}
	cfg := enabledConfig()
	cfg.MaxIssues = 2

	msg := BuildMessage(findings, cfg, review.OutputContext{})

	// Error first, then the first warning by input order.
	assert.Contains(t, msg.Text, "the error")
	assert.Contains(t, msg.Text, "first warning")
	assert.NotContains(t, msg.Text, "second warning")
	errIdx := strings.Index(msg.Text, "the error")
	warnIdx := strings.Index(msg.Text, "first warning")
	assert.Less(t, errIdx, warnIdx, "error should be listed before warning")
}

func TestBuildMessageContextAndCounts(t *testing.T) {
	cfg := enabledConfig()
	octx := review.OutputContext{
		RepositoryURL: "https://github.com/example/repo",
		PRNumber:      123,
	}

	msg := BuildMessage(testFindings(), cfg, octx)

	assert.Contains(t, msg.Text, "3 issue(s)")
	assert.Contains(t, msg.Text, "1 error, 1 warning, 1 suggestion")
	assert.Contains(t, msg.Text, "https://github.com/example/repo")
	assert.Contains(t, msg.Text, "PR #123")
}

func TestBuildMessageMentionDedup(t *testing.T) {
	cfg := enabledConfig()
	cfg.MentionUsers = []string{"@dev", "@lead", "@dev", "", "@lead"}

	msg := BuildMessage(testFindings(), cfg, review.OutputContext{})

	assert.Contains(t, msg.Text, "@dev @lead")
	assert.Equal(t, 1, strings.Count(msg.Text, "@dev"))
	assert.Equal(t, 1, strings.Count(msg.Text, "@lead"))
}

func TestBuildMessageMaxIssuesFloor(t *testing.T) {
	cfg := enabledConfig()
	cfg.MaxIssues = 0

	msg := BuildMessage(testFindings(), cfg, review.OutputContext{})
	assert.Equal(t, 1, msg.IssuesIncluded, "MaxIssues below 1 is clamped to 1")
}

// recordingSender captures dispatched messages for engine tests.
type recordingSender struct {
	sent    []*Message
	targets []string
	err     error
}

func (r *recordingSender) Send(ctx context.Context, msg *Message, target string) error {
	r.sent = append(r.sent, msg)
	r.targets = append(r.targets, target)
	return r.err
}

func TestEngineNotifyDispatchesOnce(t *testing.T) {
	sender := &recordingSender{}
	engine := NewEngine(enabledConfig(), sender, nil)

	err := engine.Notify(context.Background(), testFindings(), review.OutputContext{})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, enabledConfig().WebhookURL, sender.targets[0])
}

func TestEngineNotifySuppressed(t *testing.T) {
	cfg := enabledConfig()
	cfg.SeverityThreshold = review.SeverityError
	sender := &recordingSender{}
	engine := NewEngine(cfg, sender, nil)

	findings := []review.Finding{{Severity: review.SeverityWarning, Message: "minor"}}
	err := engine.Notify(context.Background(), findings, review.OutputContext{})

	require.NoError(t, err)
	assert.Empty(t, sender.sent, "suppressed notification must not dispatch")
}

func TestEngineNotifyDisabled(t *testing.T) {
	cfg := enabledConfig()
	cfg.Enabled = false
	sender := &recordingSender{}
	engine := NewEngine(cfg, sender, nil)

	err := engine.Notify(context.Background(), testFindings(), review.OutputContext{})
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestEngineDeliveryError(t *testing.T) {
	sender := &recordingSender{err: fmt.Errorf("connection refused")}
	engine := NewEngine(enabledConfig(), sender, nil)

	err := engine.Notify(context.Background(), testFindings(), review.OutputContext{})
	require.Error(t, err)

	var deliveryErr *DeliveryError
	require.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, enabledConfig().WebhookURL, deliveryErr.Target)
	assert.ErrorContains(t, err, "connection refused")
}
