package payment

import "marketplace/internal/pkg/apperr"

var (
	ErrInvalidMethod  = apperr.Validation("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	ErrAlreadyPaid    = apperr.Conflict("ALREADY_PAID", "Booking is already paid")
	ErrNotPayable     = apperr.Business("BOOKING_NOT_PAYABLE", "Cancelled or refunded bookings cannot be paid")
	ErrAmountMismatch = apperr.Business("AMOUNT_MISMATCH", "Amount does not match the booking total")
	ErrNotPaid        = apperr.Business("NOT_PAID", "Only paid bookings can be refunded")
)
