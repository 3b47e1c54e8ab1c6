package services

import (
	"errors"
	"fmt"
)

// Failure classes the handlers translate into user-facing flash messages.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrState      = errors.New("invalid state")
	ErrExternal   = errors.New("external service failed")
)

// Specific conditions wrap a class so callers can errors.Is either way.
var (
	ErrInvalidOffer     = fmt.Errorf("%w: offer price cannot be negative", ErrValidation)
	ErrOrderNotApproved = fmt.Errorf("%w: order is not yet approved by the seller", ErrState)
	ErrInvalidStatus    = fmt.Errorf("%w: unknown order status", ErrValidation)
	ErrWrongPassword    = fmt.Errorf("%w: wrong password", ErrValidation)
)
