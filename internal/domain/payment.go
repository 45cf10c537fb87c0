package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodWallet       PaymentMethod = "wallet"
	MethodCard         PaymentMethod = "card"
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodWallet, MethodCard, MethodCash, MethodBankTransfer:
		return true
	}
	return false
}

type PaymentRecordStatus string

const (
	PaymentRecordPending   PaymentRecordStatus = "pending"
	PaymentRecordCompleted PaymentRecordStatus = "completed"
	PaymentRecordFailed    PaymentRecordStatus = "failed"
	PaymentRecordRefunded  PaymentRecordStatus = "refunded"
)

type Payment struct {
	ID               int64               `json:"id" gorm:"primaryKey"`
	TenantID         int64               `json:"tenantId" gorm:"not null;index"`
	BookingID        int64               `json:"bookingId" gorm:"not null;index"`
	CustomerID       int64               `json:"customerId" gorm:"not null;index"`
	Amount           decimal.Decimal     `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency         string              `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Method           PaymentMethod       `json:"method" gorm:"size:20;not null"`
	GatewayReference string              `json:"gatewayReference" gorm:"size:64;not null;uniqueIndex"`
	Status           PaymentRecordStatus `json:"status" gorm:"size:20;not null;index"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}
