// Package metrics provides Prometheus metrics for the inventra backend (RED +
// automation + WebSocket). Scrapeable on /metrics; dashboards and alerts rely
// on these names.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventra"

var (
	// HTTPRequestTotal counts requests by method, path, status (RED: rate).
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, path, and status.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDurationSeconds is request latency histogram (RED: duration).
	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 10), // 1ms to ~9.3s
		},
		[]string{"method", "path"},
	)

	// DBQueryDurationSeconds is repository query latency by operation.
	DBQueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2.5, 10),
		},
		[]string{"operation"},
	)

	// RuleEvaluationsTotal counts automation rule evaluations by trigger and outcome.
	// outcome: matched | skipped
	RuleEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "automation",
			Name:      "rule_evaluations_total",
			Help:      "Total number of automation rule evaluations by trigger and outcome.",
		},
		[]string{"trigger", "outcome"},
	)

	// RuleActionsTotal counts applied rule actions by action type.
	RuleActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "automation",
			Name:      "rule_actions_total",
			Help:      "Total number of automation rule actions applied by type.",
		},
		[]string{"action"},
	)

	// ComplianceScore is the last computed compliance score (0-100).
	ComplianceScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compliance_score",
			Help:      "Last computed compliance score (0-100).",
		},
	)

	// AIScanRequestsTotal counts AI vulnerability scan calls by outcome.
	// outcome: ok | error
	AIScanRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_scan_requests_total",
			Help:      "Total number of AI vulnerability scan requests by outcome.",
		},
		[]string{"outcome"},
	)

	// WebSocketConnectionsActive is current number of WebSocket clients.
	WebSocketConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections_active",
			Help:      "Number of active WebSocket connections.",
		},
	)

	// NotificationDeliveriesTotal counts webhook deliveries by event type and
	// outcome (ok | error).
	NotificationDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_deliveries_total",
			Help:      "Total number of webhook notification deliveries by event type and outcome.",
		},
		[]string{"event_type", "outcome"},
	)
)
