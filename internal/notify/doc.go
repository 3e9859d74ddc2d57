// Package notify decides whether code review findings warrant an outbound
// notification and dispatches a rendered summary to a chat webhook.
//
// Policy is a pure function: [ShouldNotify] fires only when notifications are
// enabled and at least one finding meets the configured severity threshold,
// and [BuildMessage] trims the payload to the highest-severity findings. The
// [Engine] ties policy to a [Sender], the injectable delivery collaborator;
// [WebhookSender] is the production implementation and owns retry/backoff for
// transient HTTP failures. The engine itself never retries and never sends
// when policy suppresses the notification.
package notify
