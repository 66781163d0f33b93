// Package observability exposes kernel metrics to Prometheus.
//
// The Collector implements the facade's MetricsCollector interface and is
// wired in via nest.WithMetricsCollector. Metrics register against an
// injectable Registerer, defaulting to the global Prometheus registry.
package observability
