// Package observability holds Prometheus metric definitions for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ReactionTransitions counts reaction ledger transitions by outcome.
	ReactionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_reaction_transitions_total",
		Help: "Total number of reaction ledger transitions by outcome status",
	}, []string{"status"})

	// ReactionConflictRetries counts single-retry attempts after a ledger write
	// lost a race for the same (post, user) pair.
	ReactionConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_reaction_conflict_retries_total",
		Help: "Total number of reaction transitions retried after a write conflict",
	})

	// SignupVerificationFailures counts signup email verification verdicts that
	// rejected a signup.
	SignupVerificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_signup_verification_failures_total",
		Help: "Total number of signups rejected by email verification",
	})
)
