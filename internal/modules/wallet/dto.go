package wallet

import (
	"github.com/shopspring/decimal"

	"marketplace/internal/domain"
)

type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type Summary struct {
	Wallet             *domain.Wallet             `json:"wallet"`
	RecentTransactions []domain.WalletTransaction `json:"recentTransactions"`
}

type TopUpResponse struct {
	Wallet      *domain.Wallet            `json:"wallet"`
	Transaction *domain.WalletTransaction `json:"transaction"`
}
