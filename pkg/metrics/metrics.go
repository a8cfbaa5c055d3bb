// Package metrics documents the Prometheus metrics exposed by pokefetch.
// All metrics are defined in their respective packages (client, cache)
// to maintain modularity and avoid circular dependencies.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by pokefetch.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - pokeapi_requests_total{status} (Counter): Requests by HTTP status
//     ("network_error" for transport failures)
//   - pokeapi_request_duration_seconds (Histogram): List fetch duration
//   - pokeapi_errors_total{kind} (Counter): Errors by classification
//
// Retry Metrics (pkg/client):
//   - pokeapi_retries_total{error_kind} (Counter): Retry attempts by error kind
//   - pokeapi_retry_exhausted_total{error_kind} (Counter): Fetches that
//     exhausted max retries
//
// Cache Metrics (pkg/cache):
//   - pokeapi_cache_hits_total (Counter): Page cache hits
//   - pokeapi_cache_misses_total (Counter): Page cache misses
//   - pokeapi_cache_size_bytes (Gauge): Bytes written to the page cache
//   - pokeapi_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(pokeapi_cache_hits_total[5m])) /
//   (sum(rate(pokeapi_cache_hits_total[5m])) + sum(rate(pokeapi_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(pokeapi_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(pokeapi_request_duration_seconds_bucket[5m]))
