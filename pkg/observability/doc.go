/*
Package observability turns component lifecycle events into Prometheus metrics
and structured log lines.

Both are exposed as domain.LifecycleHooks, so they compose with each other and
with user hooks through clicktree.WithLifecycleHooks.
*/
package observability
