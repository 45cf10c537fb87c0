package provider

import "marketplace/internal/pkg/apperr"

var (
	ErrNotProvider    = apperr.Forbidden("NOT_A_PROVIDER", "No provider profile is linked to this account")
	ErrInvalidPrice   = apperr.Validation("INVALID_PRICE", "Price must be a non-negative amount with at most 2 decimals")
	ErrInvalidPricing = apperr.Validation("INVALID_PRICING_TYPE", "Unsupported pricing type")
)
