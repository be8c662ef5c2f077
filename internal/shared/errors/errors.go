// Package errors defines shared sentinel errors.
package errors

import "errors"

var (
	// Repository errors
	ErrEmptyDomain     = errors.New("domain cannot be empty")
	ErrDuplicateDomain = errors.New("domain already tracked")
	ErrInvalidData     = errors.New("invalid data")

	// Report errors
	ErrUnknownFormat = errors.New("unknown report format")
)
