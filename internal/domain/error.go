package domain

import "errors"

var (
	// Startup
	ErrConfigurationMissing = errors.New("required configuration missing")
	ErrRegistration         = errors.New("webhook registration failed")
	ErrInvalidMenu          = errors.New("invalid menu definition")

	// Per request
	ErrAuthMismatch      = errors.New("webhook secret mismatch")
	ErrMalformedPayload  = errors.New("malformed update payload")
	ErrOutboundDelivery  = errors.New("outbound delivery failed")
	ErrUnsupportedUpdate = errors.New("unsupported update")
)
