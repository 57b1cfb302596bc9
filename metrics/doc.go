// Package metrics exports object runtime lifecycle counters to Prometheus.
package metrics
