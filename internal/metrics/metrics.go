// Package metrics exposes the aggregate load and query counters required by
// the failure-isolation contract: per-unit errors surface only as log
// records plus these counters, never as propagated failures.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UnitsLoaded counts plugin units that loaded and registered successfully.
	UnitsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quantflow_plugin_units_loaded_total",
		Help: "Plugin units loaded and registered successfully.",
	})

	// UnitFailures counts plugin units that failed to load.
	UnitFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quantflow_plugin_unit_failures_total",
		Help: "Plugin units that failed to load.",
	})

	// RegisteredNodes tracks the current registry size.
	RegisteredNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quantflow_registered_nodes",
		Help: "Work nodes currently registered.",
	})

	// CatalogRequests counts catalog queries served over HTTP.
	CatalogRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quantflow_catalog_requests_total",
		Help: "Catalog queries served.",
	})
)

// Handler returns the HTTP handler serving the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
