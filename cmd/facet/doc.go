// Facet renders code review findings into terminal, Markdown, JSON, and HTML
// artifacts and dispatches policy-driven webhook notifications.
//
// Usage:
//
//	facet render --input findings.json --format terminal:compact
//	facet render --input findings.json --format markdown:pr_comment --format json:sarif --out report
//	facet notify --input findings.json --config notify.yaml
//	facet formats
//
// See https://github.com/dshills/facet for full documentation.
package main
