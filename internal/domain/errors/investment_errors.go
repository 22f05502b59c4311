package errors

import "errors"

var (
	// ErrUnknownProduct is returned when a purchase names a product that
	// does not exist or is inactive.
	ErrUnknownProduct = errors.New("unknown investment product")

	// ErrPurchaseLimitReached is returned when a user already holds the
	// maximum number of units of a limited product.
	ErrPurchaseLimitReached = errors.New("product purchase limit reached")
)
