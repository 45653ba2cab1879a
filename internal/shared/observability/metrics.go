package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pystub_parsing_seconds",
		Help:    "Time spent parsing a Rust source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pystub_scan_seconds",
		Help:    "Time spent on a full crate scan.",
		Buckets: prometheus.DefBuckets,
	})

	DescriptorsRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pystub_descriptors_registered_total",
		Help: "Total number of descriptors registered, by declaration kind.",
	}, []string{"kind"})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pystub_diagnostics_total",
		Help: "Total number of compile diagnostics, by diagnostic kind.",
	}, []string{"kind"})

	CatalogSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pystub_catalog_entries",
		Help: "Current number of entries in the descriptor catalog.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pystub_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
