package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletTransactionType string

const (
	WalletCredit WalletTransactionType = "credit"
	WalletDebit  WalletTransactionType = "debit"
)

// Wallet is a per-user prepaid balance. Balance never goes below zero.
type Wallet struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	TenantID  int64           `json:"tenantId" gorm:"not null;index;uniqueIndex:idx_wallets_tenant_user,priority:1"`
	UserID    int64           `json:"userId" gorm:"not null;uniqueIndex:idx_wallets_tenant_user,priority:2"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:decimal(12,2);not null;default:0"`
	Currency  string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type WalletTransaction struct {
	ID            int64                 `json:"id" gorm:"primaryKey"`
	TenantID      int64                 `json:"tenantId" gorm:"not null;index"`
	WalletID      int64                 `json:"walletId" gorm:"not null;index"`
	Type          WalletTransactionType `json:"type" gorm:"size:10;not null"`
	Amount        decimal.Decimal       `json:"amount" gorm:"type:decimal(12,2);not null"`
	BalanceAfter  decimal.Decimal       `json:"balanceAfter" gorm:"type:decimal(12,2);not null"`
	ReferenceType string                `json:"referenceType,omitempty" gorm:"size:32"`
	ReferenceID   int64                 `json:"referenceId,omitempty"`
	Description   string                `json:"description,omitempty" gorm:"size:255"`
	CreatedAt     time.Time             `json:"createdAt" gorm:"index"`
}
