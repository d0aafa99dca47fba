package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrUnavailable      = errors.New("some items are no longer available")
	ErrBadTransition    = errors.New("transition not allowed")
	ErrDiscountApplied  = errors.New("discount already applied")
	ErrDiscountInFlight = errors.New("discount application already in flight")
	ErrRefreshInFlight  = errors.New("availability refresh already in flight")
	ErrNoCheckout       = errors.New("no open checkout session")
	ErrNoDraft          = errors.New("no booking draft in progress")
)
