package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})

	tokenRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_token_rejections_total",
		Help: "Number of rejected bearer tokens grouped by failure kind.",
	}, []string{"kind"})

	postsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_posts_created_total",
		Help: "Number of posts created.",
	})

	visibilityDenials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_visibility_denials_total",
		Help: "Number of single-post reads denied by the visibility gate.",
	})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncTokenRejection increments the token rejection counter.
func IncTokenRejection(kind string) {
	tokenRejections.WithLabelValues(kind).Inc()
}

// IncPostCreated increments the created-posts counter.
func IncPostCreated() {
	postsCreated.Inc()
}

// IncVisibilityDenial increments the visibility denial counter.
func IncVisibilityDenial() {
	visibilityDenials.Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}
