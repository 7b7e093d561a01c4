package domain

import "errors"

// Sentinel errors for the gallery domain. These provide consistent, checkable
// errors for failures that happen before or after a remote call.
var (
	ErrCardNotFound = errors.New("card not found in the rendered list")
	ErrInvalidInput = errors.New("invalid form input")
)
