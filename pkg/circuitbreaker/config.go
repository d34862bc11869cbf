package circuitbreaker

import "time"

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name identifies the breaker in logs.
	Name string

	// Enabled determines whether the breaker is active.
	// When false, New returns nil and Execute calls straight through.
	Enabled bool

	// MaxRequests is the number of probe requests allowed while half-open.
	// Zero allows a single probe.
	MaxRequests uint

	// Interval is the cyclic period after which closed-state counts reset.
	// Zero never resets them.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	// Zero means 60 seconds.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint

	// IgnoredErrors are returned to the caller but never counted as failures.
	IgnoredErrors []error

	// OnStateChange is notified on every state transition.
	OnStateChange func(name, from, to string)
}
