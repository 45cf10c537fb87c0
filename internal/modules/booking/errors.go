package booking

import "marketplace/internal/pkg/apperr"

var (
	ErrInvalidAddon      = apperr.Validation("INVALID_ADDON", "One or more addons are not available for this service")
	ErrInvalidStatus     = apperr.Validation("INVALID_STATUS", "Unknown booking status")
	ErrInvalidTransition = apperr.Business("INVALID_STATUS_TRANSITION", "Booking cannot move to the requested status")
	ErrPaidCancellation  = apperr.Business("BOOKING_PAID", "Paid bookings are cancelled by refunding them")
	ErrScheduleRequired  = apperr.Validation("VALIDATION_ERROR", "scheduledAt is required")
)
