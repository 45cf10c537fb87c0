package auth

import "marketplace/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.Unauthenticated("INVALID_CREDENTIALS", "Invalid email or password")
	ErrAccountSuspended   = apperr.Forbidden("ACCOUNT_SUSPENDED", "Account is suspended")
)
