package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aid_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aid_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RequestsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aid_distribution_requests_created_total",
			Help: "Distribution requests submitted",
		},
	)

	RequestsApproved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aid_distribution_requests_approved_total",
			Help: "Distribution requests approved",
		},
	)

	RequestsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aid_distribution_requests_rejected_total",
			Help: "Distribution requests rejected",
		},
	)

	TasksGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aid_tasks_generated_total",
			Help: "Delivery tasks generated from approved requests",
		},
	)

	TasksDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aid_tasks_delivered_total",
			Help: "Delivery tasks marked delivered",
		},
	)
)
