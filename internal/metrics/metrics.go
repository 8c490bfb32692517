// Package metrics exposes the Prometheus metrics emitted while scanning
// posting lists: how long each kernel variant takes, how many hits it
// emits, and which variant got dispatched.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScanDuration records wall-clock time spent inside a single scan call,
// bucketed by kernel variant ("scalar", "avx2", "avx512", "reference").
var ScanDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "scancount_scan_duration_seconds",
		Help:    "Time spent in a single scan_blocked/scan_blocked_256/scan_blocked_512/scan_reference call",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	},
	[]string{"variant"},
)

// HitsEmittedTotal counts ids emitted as threshold hits, by variant.
var HitsEmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "scancount_hits_emitted_total",
		Help: "Total number of ids emitted as threshold hits",
	},
	[]string{"variant"},
)

// SimdDispatchTotal counts how many scans were dispatched to each
// kernel variant.
var SimdDispatchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "scancount_simd_dispatch_total",
		Help: "Total number of scans dispatched to each SIMD variant",
	},
	[]string{"variant"},
)

// QueriesProcessedTotal counts queries resolved and scanned by the query
// driver, separated by outcome.
var QueriesProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "scancount_queries_processed_total",
		Help: "Total number of queries processed by the query driver",
	},
	[]string{"outcome"},
)
