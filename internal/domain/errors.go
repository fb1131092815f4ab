package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict with current state")
	ErrInvalidTransition  = errors.New("invalid checkout step transition")
	ErrCheckoutCompleted  = errors.New("checkout already completed")
	ErrSubmitInProgress   = errors.New("a submission is already in progress")
	ErrSessionExpired     = errors.New("checkout session expired")
	ErrRateLimited        = errors.New("too many requests")
	ErrServiceUnavailable = errors.New("service not configured")
)
