package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dshills/facet/internal/metrics"
	"github.com/dshills/facet/internal/review"
)

// Config controls whether and how notifications are sent.
type Config struct {
	Enabled           bool            `json:"enabled" yaml:"enabled"`
	WebhookURL        string          `json:"webhookUrl" yaml:"webhook_url"`
	Channel           string          `json:"channel,omitempty" yaml:"channel,omitempty"`
	SeverityThreshold review.Severity `json:"severityThreshold" yaml:"severity_threshold"`
	MaxIssues         int             `json:"maxIssues" yaml:"max_issues"`
	MentionUsers      []string        `json:"mentionUsers,omitempty" yaml:"mention_users,omitempty"`
}

// DefaultConfig returns a disabled config with sensible policy defaults.
func DefaultConfig() Config {
	return Config{
		SeverityThreshold: review.SeverityWarning,
		MaxIssues:         5,
	}
}

// Message is a rendered notification ready for delivery.
type Message struct {
	Text           string `json:"text"`
	Channel        string `json:"channel,omitempty"`
	IssuesIncluded int    `json:"issuesIncluded"`
	TotalIssues    int    `json:"totalIssues"`
}

// Sender delivers a rendered message to a target. Implementations own their
// retry and timeout policy; the engine never retries.
type Sender interface {
	Send(ctx context.Context, msg *Message, target string) error
}

// DeliveryError reports a failed notification dispatch.
type DeliveryError struct {
	Target string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivering notification to %s: %v", e.Target, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// ShouldNotify reports whether the findings warrant a notification: the
// config is enabled and at least one finding meets the severity threshold.
func ShouldNotify(findings []review.Finding, cfg Config) bool {
	if !cfg.Enabled {
		return false
	}
	for _, f := range findings {
		if review.MeetsThreshold(f.Severity, cfg.SeverityThreshold) {
			return true
		}
	}
	return false
}

// BuildMessage renders a short summary of the findings. It includes at most
// cfg.MaxIssues findings, ordered by severity descending with input order
// breaking ties, followed by severity counts, repository context, and
// deduplicated user mentions.
func BuildMessage(findings []review.Finding, cfg Config, octx review.OutputContext) *Message {
	maxIssues := cfg.MaxIssues
	if maxIssues < 1 {
		maxIssues = 1
	}

	top := topFindings(findings, maxIssues)
	summary := review.ComputeSummary(findings)

	var b strings.Builder
	fmt.Fprintf(&b, "*Code review found %d issue(s)* (%d error, %d warning, %d suggestion)\n",
		summary.Total, summary.Counts.Error, summary.Counts.Warning, summary.Counts.Suggestion)

	if octx.RepositoryURL != "" {
		fmt.Fprintf(&b, "Repository: %s", octx.RepositoryURL)
		if octx.PRNumber > 0 {
			fmt.Fprintf(&b, " (PR #%d)", octx.PRNumber)
		}
		b.WriteString("\n")
	}

	for _, f := range top {
		fmt.Fprintf(&b, "• %s: %s", strings.ToUpper(string(f.Severity)), f.Message)
		if loc := f.Location(); loc != "" {
			fmt.Fprintf(&b, " (%s)", loc)
		}
		b.WriteString("\n")
	}
	if summary.Total > len(top) {
		fmt.Fprintf(&b, "…and %d more\n", summary.Total-len(top))
	}

	if mentions := dedupeMentions(cfg.MentionUsers); len(mentions) > 0 {
		b.WriteString(strings.Join(mentions, " "))
		b.WriteString("\n")
	}

	return &Message{
		Text:           b.String(),
		Channel:        cfg.Channel,
		IssuesIncluded: len(top),
		TotalIssues:    summary.Total,
	}
}

// topFindings selects up to limit findings by severity descending; the sort
// is stable so equal severities keep their input order.
func topFindings(findings []review.Finding, limit int) []review.Finding {
	sorted := make([]review.Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return review.SeverityRank(sorted[i].Severity) > review.SeverityRank(sorted[j].Severity)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// dedupeMentions drops repeated identifiers, keeping first-occurrence order.
func dedupeMentions(users []string) []string {
	seen := make(map[string]bool, len(users))
	out := make([]string, 0, len(users))
	for _, u := range users {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// Engine evaluates notification policy and dispatches through a Sender.
type Engine struct {
	cfg       Config
	sender    Sender
	log       logrus.FieldLogger
	collector *metrics.Collector
}

// NewEngine creates an engine. log may be nil.
func NewEngine(cfg Config, sender Sender, log logrus.FieldLogger) *Engine {
	if log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		log = logger
	}
	return &Engine{cfg: cfg, sender: sender, log: log}
}

// WithMetrics attaches a metrics collector and returns the engine.
func (e *Engine) WithMetrics(c *metrics.Collector) *Engine {
	e.collector = c
	return e
}

// Notify evaluates the policy and, when it passes, renders and dispatches
// exactly one message. When the policy suppresses the notification, no
// message is sent and Notify returns nil. Delivery failures surface as a
// *DeliveryError; the engine does not retry.
func (e *Engine) Notify(ctx context.Context, findings []review.Finding, octx review.OutputContext) error {
	if !ShouldNotify(findings, e.cfg) {
		e.log.WithFields(logrus.Fields{
			"enabled":   e.cfg.Enabled,
			"threshold": e.cfg.SeverityThreshold,
			"findings":  len(findings),
		}).Debug("notification suppressed by policy")
		return nil
	}

	msg := BuildMessage(findings, e.cfg, octx)

	if err := e.Dispatch(ctx, msg); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"target":          e.cfg.WebhookURL,
		"issues_included": msg.IssuesIncluded,
		"total_issues":    msg.TotalIssues,
	}).Info("notification sent")
	return nil
}

// Dispatch hands a message to the delivery collaborator.
func (e *Engine) Dispatch(ctx context.Context, msg *Message) error {
	err := e.sender.Send(ctx, msg, e.cfg.WebhookURL)
	if err != nil {
		e.collector.ObserveNotification(metrics.StatusError)
		e.log.WithField("target", e.cfg.WebhookURL).WithError(err).Error("notification delivery failed")
		return &DeliveryError{Target: e.cfg.WebhookURL, Err: err}
	}
	e.collector.ObserveNotification(metrics.StatusOK)
	return nil
}
