package apperrors

import "errors"

// Sentinel errors for the service layer. Handlers map these to HTTP status
// codes; anything unrecognised is treated as an internal error.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("duplicate entry")
	ErrInvalidCode      = errors.New("invalid code")
	ErrCodeExpired      = errors.New("code expired")
	ErrDispatch         = errors.New("sms dispatch failed")
	ErrCapacityExceeded = errors.New("all week slots already paid")
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrForbidden        = errors.New("forbidden")
)
