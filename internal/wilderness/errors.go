package wilderness

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's request-time taxonomy. Callers distinguish
// them with errors.Is; none are retried by the engine itself.
var (
	// ErrOutOfDomain marks a request with coordinates outside the legal square.
	ErrOutOfDomain = errors.New("coordinate out of domain")

	// ErrRequestTooLarge marks a batch whose rectangle exceeds the point ceiling.
	ErrRequestTooLarge = errors.New("batch request too large")

	// ErrTimeout marks a batch whose deadline elapsed before all points completed.
	ErrTimeout = errors.New("batch deadline exceeded")

	// ErrUpstreamUnavailable marks a failed base terrain oracle fetch. A single
	// failed point fails the whole batch; silent substitution would break the
	// determinism guarantee.
	ErrUpstreamUnavailable = errors.New("base terrain oracle unavailable")
)

// ConfigurationError reports an invalid sector table or tuning value. It is
// raised once at process startup, never mid-request.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Detail)
}
