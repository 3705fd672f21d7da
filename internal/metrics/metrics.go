// Package metrics holds Prometheus instruments for authentication outcomes.
// All collectors are registered with the default registry and exposed on
// /metrics by the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	SignupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_signup_total",
			Help: "Signup attempts by result.",
		}, []string{"result"})

	LoginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_total",
			Help: "Login attempts by result.",
		}, []string{"result"})

	RefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_refresh_total",
			Help: "Access token refresh attempts by result.",
		}, []string{"result"})

	GuardRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_guard_rejections_total",
			Help: "Requests rejected by the bearer token guard.",
		})
)

func init() {
	prometheus.MustRegister(
		SignupTotal,
		LoginTotal,
		RefreshTotal,
		GuardRejectionsTotal,
	)
}
