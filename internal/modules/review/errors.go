package review

import "marketplace/internal/pkg/apperr"

var (
	ErrInvalidRating    = apperr.Validation("INVALID_RATING", "Rating must be between 1 and 5")
	ErrReviewNotAllowed = apperr.Business("REVIEW_NOT_ALLOWED", "Only completed bookings can be reviewed")
)
