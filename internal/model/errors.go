package model

import "errors"

// Error taxonomy shared by every engine component. Call sites wrap these with
// fmt.Errorf("...: %w", err) and callers branch with errors.Is.
var (
	// ErrNotFound is returned when a jurisdiction, case type or rule record is unknown.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for out-of-range or malformed valuation inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExpired is returned when a share token decodes cleanly but is past its expiry.
	ErrExpired = errors.New("share token expired")

	// ErrMalformed is returned when a share token cannot be decoded at all.
	ErrMalformed = errors.New("malformed share token")
)
