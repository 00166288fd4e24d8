package models

import "errors"

// Sentinel errors surfaced by services and mapped to HTTP statuses by handlers.
// Login outcomes are values, not errors.
var (
	ErrRateLimitExceeded     = errors.New("rate limit exceeded")
	ErrEmailDelivery         = errors.New("email delivery failed")
	ErrCompletionUnavailable = errors.New("chat completion unavailable")
)
