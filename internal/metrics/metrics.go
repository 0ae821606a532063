// Package metrics exposes Prometheus instrumentation for the risk backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Broker RPC metrics
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qms_risk_rpc_requests_total",
			Help: "Total broker RPC calls by queue and outcome (served, timeout, error)",
		},
		[]string{"queue", "outcome"},
	)

	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qms_risk_rpc_duration_seconds",
			Help:    "Duration of broker RPC round-trips in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"queue"},
	)

	// Fallback reader metrics
	FallbackReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qms_risk_fallback_reads_total",
			Help: "Total fallback store reads by domain and status",
		},
		[]string{"domain", "status"},
	)

	// Report assembly metrics
	ReportBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qms_risk_report_build_duration_seconds",
			Help:    "Duration of full risk report assembly in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ReportRowErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qms_risk_report_row_errors_total",
			Help: "Total catalog entries that produced a degraded report row",
		},
	)
)

// RPC outcome label values.
const (
	OutcomeServed  = "served"
	OutcomeTimeout = "timeout"
	OutcomeError   = "error"
)

// Fallback status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)
