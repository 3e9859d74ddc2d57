package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// WebhookSenderConfig tunes the webhook sender's retry and timeout behavior.
type WebhookSenderConfig struct {
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultWebhookSenderConfig returns sensible defaults.
func DefaultWebhookSenderConfig() WebhookSenderConfig {
	return WebhookSenderConfig{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

// WebhookSender posts Slack-compatible JSON payloads to a webhook URL. It
// owns retry and backoff policy for transient failures; callers see only the
// final outcome.
type WebhookSender struct {
	httpCli  *http.Client
	executor failsafe.Executor[*http.Response]
}

// NewWebhookSender creates a sender with the given config.
func NewWebhookSender(cfg WebhookSenderConfig) *WebhookSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 200 * time.Millisecond
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = 5 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	retry := retrypolicy.NewBuilder[*http.Response]().
		WithBackoff(cfg.BaseDelay, cfg.MaxDelay).
		WithMaxRetries(cfg.MaxRetries).
		WithJitterFactor(0.1).
		HandleIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		}).
		Build()

	return &WebhookSender{
		httpCli:  &http.Client{Timeout: cfg.Timeout},
		executor: failsafe.With(retry),
	}
}

// webhookPayload is the Slack incoming-webhook message body. Other chat
// providers accept the same text field.
type webhookPayload struct {
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
}

// Send posts the message to the target URL, retrying transient failures per
// the sender's policy. A non-2xx final response is an error.
func (s *WebhookSender) Send(ctx context.Context, msg *Message, target string) error {
	if target == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	body, err := json.Marshal(webhookPayload{Text: msg.Text, Channel: msg.Channel})
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	resp, err := s.executor.WithContext(ctx).Get(func() (*http.Response, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Content-Type", "application/json")

		r, doErr := s.httpCli.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		// Drain retried responses so connections are reused.
		if r.StatusCode >= 500 || r.StatusCode == http.StatusTooManyRequests {
			snippet, _ := io.ReadAll(io.LimitReader(r.Body, 512))
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(snippet))
		}
		return r, nil
	})
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}
