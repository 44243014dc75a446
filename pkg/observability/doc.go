/*
Package observability turns editor lifecycle hooks into Prometheus metrics and
structured log lines.

Metrics are registered on a caller-supplied registerer so tests and embedders can
use their own registry. Hooks from several sources are combined with Chain.
*/
package observability
