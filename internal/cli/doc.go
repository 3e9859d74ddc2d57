// Package cli implements the facet command-line interface: rendering findings
// JSON into one or more output formats and dispatching webhook notifications.
// All rendering and policy logic lives in the internal/output and
// internal/notify packages; this package only wires flags to them.
package cli
