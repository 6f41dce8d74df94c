// Package metrics exposes Prometheus collectors for API traffic, sync cycles
// and alerts. The collectors live on a private registry and are served over
// HTTP only when a metrics address is configured.
package metrics
