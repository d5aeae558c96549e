package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gdp_export_runs_total",
		Help: "Total export runs by final status",
	}, []string{"status"})
	RowsReadTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gdp_export_rows_read_total",
		Help: "Total data rows read from input files",
	})
	RowsDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gdp_export_rows_dropped_total",
		Help: "Total data rows dropped by the ISO-3 country filter or rejected by the CSV parser",
	})
	CountriesExported = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gdp_export_countries",
		Help: "Countries written by the last successful run",
	})
	RunDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gdp_export_run_duration_ms",
		Help:    "Export run duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
)

func init() {
	prometheus.MustRegister(RunsTotal)
	prometheus.MustRegister(RowsReadTotal)
	prometheus.MustRegister(RowsDroppedTotal)
	prometheus.MustRegister(CountriesExported)
	prometheus.MustRegister(RunDurationMs)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
