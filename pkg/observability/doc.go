/*
Package observability exposes registry activity as Prometheus metrics.

Metrics are fed exclusively through domain.LifecycleHooks, so the registry stays
unaware of the metrics backend. Each Metrics value owns its own prometheus.Registry,
which keeps tests and multiple servers in one process isolated.
*/
package observability
