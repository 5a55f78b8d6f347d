package services

import "errors"

// Terminal scheduling failures. Each maps to a distinct client-facing
// response so callers can tell a malformed request from a legally
// infeasible trip.
var (
	// The trip or route input is malformed (empty route, non-positive leg,
	// negative cycle hours, missing locations).
	ErrInvalidInput = errors.New("invalid input")

	// The driver's cycle hours are already at or over the cycle limit, so
	// no driving can legally be scheduled.
	ErrCycleExhausted = errors.New("cycle hours exhausted")
)
