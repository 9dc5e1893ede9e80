package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Counters are constructed eagerly so library code can Inc() them whether
// or not a binary registered them; Register wires them into a registry.
var (
	LoginSuccessTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentalfleet_logins_success_total",
		Help: "Total number of successful logins.",
	})
	LoginFailureTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentalfleet_logins_failure_total",
		Help: "Total number of failed logins.",
	})
	UserRegisteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentalfleet_users_registered_total",
		Help: "Total number of users registered.",
	})
	TokensIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentalfleet_tokens_issued_total",
		Help: "Total number of session tokens issued.",
	})
	SessionSlidesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentalfleet_session_slides_total",
		Help: "Total number of authorized calls that slid a session TTL.",
	})
	AuthorizationDeniedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentalfleet_authorization_denied_total",
		Help: "Total number of denied authorization checks.",
	})
)

// Register registers the fleet metrics with reg. It should be called once
// at binary startup.
func Register(reg prometheus.Registerer) {
	if reg == nil {
		log.Error().Msg("Prometheus registry is nil, cannot register metrics.")
		return
	}

	collectors := []prometheus.Collector{
		LoginSuccessTotal,
		LoginFailureTotal,
		UserRegisteredTotal,
		TokensIssuedTotal,
		SessionSlidesTotal,
		AuthorizationDeniedTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			log.Warn().Err(err).Msg("Failed to register metric")
		}
	}
}
