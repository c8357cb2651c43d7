/*-------------------------------------------------------------------------
 *
 * prometheus.go
 *    Prometheus metrics for the InheritX backend
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/metrics/prometheus.go
 *
 *-------------------------------------------------------------------------
 */

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	/* Request metrics */
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inheritx_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inheritx_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	/* Approval workflow metrics */
	approvalDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inheritx_approval_decisions_total",
			Help: "Total number of approval decisions submitted",
		},
		[]string{"decision"},
	)

	approvalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inheritx_approval_requests_total",
			Help: "Total number of approval request batches created",
		},
		[]string{"status"},
	)

	/* Execution gate metrics */
	planExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inheritx_plan_executions_total",
			Help: "Total number of plan execution attempts",
		},
		[]string{"status"},
	)

	planExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inheritx_plan_execution_duration_seconds",
			Help:    "Plan execution duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"status"},
	)

	/* Withdrawal metrics */
	withdrawalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inheritx_withdrawals_total",
			Help: "Total number of withdrawal attempts",
		},
		[]string{"status"},
	)

	/* Notification metrics */
	notificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inheritx_notifications_sent_total",
			Help: "Total number of notifications created",
		},
		[]string{"channel", "status"},
	)

	/* Database connection pool metrics */
	dbPoolOpenConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inheritx_db_pool_open_connections",
			Help: "Number of open database connections",
		},
		[]string{"database"},
	)

	dbPoolIdleConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inheritx_db_pool_idle_connections",
			Help: "Number of idle database connections",
		},
		[]string{"database"},
	)

	dbPoolInUseConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inheritx_db_pool_in_use_connections",
			Help: "Number of database connections in use",
		},
		[]string{"database"},
	)
)

/* RecordHTTPRequest records an HTTP request */
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	/* Convert status code to status class for better PromQL queries */
	statusClass := "unknown"
	if status >= 200 && status < 300 {
		statusClass = "2xx"
	} else if status >= 300 && status < 400 {
		statusClass = "3xx"
	} else if status >= 400 && status < 500 {
		statusClass = "4xx"
	} else if status >= 500 {
		statusClass = "5xx"
	}

	httpRequestsTotal.WithLabelValues(method, endpoint, statusClass).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

/* RecordApprovalDecision records an approval decision submission */
func RecordApprovalDecision(decision string) {
	approvalDecisionsTotal.WithLabelValues(decision).Inc()
}

/* RecordApprovalRequest records an approval request batch */
func RecordApprovalRequest(status string) {
	approvalRequestsTotal.WithLabelValues(status).Inc()
}

/* RecordPlanExecution records a plan execution attempt */
func RecordPlanExecution(status string, duration time.Duration) {
	planExecutionsTotal.WithLabelValues(status).Inc()
	planExecutionDuration.WithLabelValues(status).Observe(duration.Seconds())
}

/* RecordWithdrawal records a withdrawal attempt */
func RecordWithdrawal(status string) {
	withdrawalsTotal.WithLabelValues(status).Inc()
}

/* RecordNotificationSent records a notification delivery */
func RecordNotificationSent(channel, status string) {
	notificationsSentTotal.WithLabelValues(channel, status).Inc()
}

/* RecordDBPoolStats records database connection pool statistics */
func RecordDBPoolStats(database string, openConns, idleConns, inUse int) {
	dbPoolOpenConns.WithLabelValues(database).Set(float64(openConns))
	dbPoolIdleConns.WithLabelValues(database).Set(float64(idleConns))
	dbPoolInUseConns.WithLabelValues(database).Set(float64(inUse))
}

/* Handler returns the Prometheus metrics handler */
func Handler() http.Handler {
	return promhttp.Handler()
}
