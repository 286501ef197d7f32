package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// FulfillmentOutcomes counts fulfillment results by outcome status
	FulfillmentOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fulfillment_outcomes_total", Help: "Fulfillment outcomes by status."},
		[]string{"status"},
	)
	// CatalogResolutions counts per-SKU resolution results (hit, unmapped, unmatched)
	CatalogResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "catalog_resolutions_total", Help: "SKU resolutions by result."},
		[]string{"result"},
	)
	// SupplierCalls counts supplier API calls by operation and result
	SupplierCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "supplier_calls_total", Help: "Supplier API calls by operation and result."},
		[]string{"op", "result"},
	)
	// SupplierLatency tracks supplier call latency in seconds
	SupplierLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "supplier_call_duration_seconds", Help: "Supplier API call latency in seconds.", Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30}},
		[]string{"op"},
	)
)

// RegisterDefault registers collectors to the default registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(FulfillmentOutcomes)
		Registry.MustRegister(CatalogResolutions)
		Registry.MustRegister(SupplierCalls)
		Registry.MustRegister(SupplierLatency)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
