package order

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrMissingDetails       = errors.New("customer details and at least one item are required")
	ErrInvalidItem          = errors.New("each item must have a product ID and a positive quantity")
	ErrUnknownProduct       = errors.New("product not found")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrInvalidPayment       = errors.New("invalid payment method")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// IsValidation reports whether err is caused by a malformed request rather
// than by the state of the store.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingDetails) ||
		errors.Is(err, ErrInvalidItem) ||
		errors.Is(err, ErrUnknownProduct) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidPayment) ||
		errors.Is(err, ErrInvalidPaymentStatus)
}
