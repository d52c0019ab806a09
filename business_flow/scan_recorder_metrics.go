package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons reported on scans_dropped_total
const (
	dropReasonQueueFull     = "queue_full"
	dropReasonStopped       = "stopped"
	dropReasonPersistFailed = "persist_failed"
)

var (
	scansRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scans_recorded_total",
			Help: "Total number of scan events persisted",
		},
	)

	scansDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scans_dropped_total",
			Help: "Total number of scan events that were not persisted",
		},
		[]string{"reason"},
	)

	scanQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scan_queue_depth",
			Help: "Number of scan events waiting to be persisted",
		},
	)
)
