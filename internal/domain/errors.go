package domain

import "errors"

// Sentinel errors shared by services, repositories and controllers.
var (
	ErrValidation     = errors.New("validation failed")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrEncoding       = errors.New("calendar encoding failed")
)
