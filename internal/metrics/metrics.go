package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barber_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barber_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	LoginFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barber_login_failures_total",
			Help: "Login failures by internal reason",
		},
		[]string{"reason"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barber_active_sessions",
			Help: "Sessions currently held by the registry",
		},
	)

	AppointmentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barber_appointments_created_total",
			Help: "Appointments successfully created",
		},
	)

	SlotConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barber_slot_conflicts_total",
			Help: "Appointment creations rejected by slot conflict",
		},
	)
)
