// internal/core/domain/errors.go
package domain

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP
// status codes; repositories wrap them with call-site context.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotFound          = errors.New("not found")
)
