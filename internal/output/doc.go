// Package output renders code review findings into formatted artifacts.
//
// Five formats are built in, each with named sub-format variants:
//   - terminal — detailed or compact text for interactive use
//   - markdown — pr_comment, github, and gitlab dialects for CI comments
//   - json     — sarif (SARIF 2.1.0), gitlab_ci (Code Quality), and metrics
//   - html     — a self-contained, filterable dashboard document
//   - template — built-in or caller-supplied text/template rendering
//
// Formatters are pure functions of their inputs and perform no I/O. A
// [Registry] maps format identifiers to formatter factories and accepts
// runtime registration of custom formats. The [Router] executes one or many
// [OutputRequest]s, fanning out concurrently and preserving request order in
// its responses.
package output
