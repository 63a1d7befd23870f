package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned when the gateway key pair is absent.
	ErrMissingCredentials = errors.New("gateway: missing API credentials")

	// ErrInvalidAmount is returned when the amount is below the gateway minimum.
	ErrInvalidAmount = errors.New("gateway: amount must be at least 100 paise")

	// ErrMalformedResponse is returned when the gateway reply lacks required fields.
	ErrMalformedResponse = errors.New("gateway: malformed response")
)

// GatewayError wraps a gateway API failure with context. Transport errors and
// gateway-side rejections both surface through this type; the orchestrator
// reduces them to a generic payment failure for the caller.
type GatewayError struct {
	Message       string // Human-readable error message
	Op            string // Operation that failed (e.g., "order.create")
	OriginalError error  // Original error from the SDK or transport
}

func (e *GatewayError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("gateway: %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("gateway: %s", e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.OriginalError
}
