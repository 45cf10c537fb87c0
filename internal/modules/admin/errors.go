package admin

import "marketplace/internal/pkg/apperr"

var (
	ErrInvalidCommission   = apperr.Validation("INVALID_COMMISSION", "Commission rate must be between 0 and 100 with at most 2 decimals")
	ErrInvalidVerification = apperr.Validation("INVALID_VERIFICATION_STATUS", "Unsupported verification status")
	ErrInvalidUserStatus   = apperr.Validation("INVALID_USER_STATUS", "Unsupported user status")
	ErrInvalidSlug         = apperr.Validation("INVALID_SLUG", "Slug must contain letters or digits")
	ErrSelfStatusChange    = apperr.Business("SELF_STATUS_CHANGE", "Admins cannot change their own status")
	ErrNotCustomer         = apperr.Business("USER_NOT_CUSTOMER", "Only customers can be promoted to provider")
)
