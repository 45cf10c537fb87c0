package wallet

import "marketplace/internal/pkg/apperr"

var (
	ErrInvalidAmount       = apperr.Validation("INVALID_AMOUNT", "Amount must be positive with at most two decimals")
	ErrInsufficientBalance = apperr.Business("INSUFFICIENT_BALANCE", "Wallet balance is insufficient")
)
