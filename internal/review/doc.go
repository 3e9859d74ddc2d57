// Package review defines the shared data model for code review findings:
// severity levels with a fixed total ordering, the Finding record produced by
// the rule engine, the per-render OutputContext, and summary aggregation
// helpers used by the output formatters and the notification engine.
package review
