package models

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// the HTTP status codes of the uniform response envelope.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
