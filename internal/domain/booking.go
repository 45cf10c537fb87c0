package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingRefunded   BookingStatus = "refunded"
)

// position on the forward path; side exits are absent
var bookingProgress = map[BookingStatus]int{
	BookingPending:    0,
	BookingConfirmed:  1,
	BookingInProgress: 2,
	BookingCompleted:  3,
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled, BookingRefunded:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingRefunded
}

// CanTransitionTo reports whether next is reachable from s. The forward path
// may skip steps but never goes back; cancelled is reachable before
// completion, refunded from any non-terminal state.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next || s.Terminal() || !next.Valid() {
		return false
	}
	switch next {
	case BookingCancelled:
		return s != BookingCompleted
	case BookingRefunded:
		return true
	}
	return bookingProgress[next] > bookingProgress[s]
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

var hundred = decimal.NewFromInt(100)

// ComputeCommission returns total × rate / 100 rounded to cents.
func ComputeCommission(total, rate decimal.Decimal) decimal.Decimal {
	return total.Mul(rate).Div(hundred).Round(2)
}

type Booking struct {
	ID                 int64           `json:"id" gorm:"primaryKey"`
	TenantID           int64           `json:"tenantId" gorm:"not null;index"`
	CustomerID         int64           `json:"customerId" gorm:"not null;index"`
	ProviderID         int64           `json:"providerId" gorm:"not null;index"`
	ServiceID          int64           `json:"serviceId" gorm:"not null;index"`
	ScheduledAt        time.Time       `json:"scheduledAt" gorm:"not null;index"`
	Notes              string          `json:"notes,omitempty" gorm:"type:text"`
	Status             BookingStatus   `json:"status" gorm:"size:20;not null;default:'pending';index"`
	PaymentStatus      PaymentStatus   `json:"paymentStatus" gorm:"size:20;not null;default:'pending';index"`
	TotalAmount        decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	CommissionRate     decimal.Decimal `json:"commissionRate" gorm:"type:decimal(5,2);not null"`
	CommissionAmount   decimal.Decimal `json:"commissionAmount" gorm:"type:decimal(12,2);not null"`
	Currency           string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	CancellationReason string          `json:"cancellationReason,omitempty" gorm:"type:text"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`

	Addons  []BookingAddon `json:"addons,omitempty" gorm:"foreignKey:BookingID"`
	Service *Service       `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// BookingAddon snapshots the addon name and price at booking time.
type BookingAddon struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	TenantID  int64           `json:"tenantId" gorm:"not null;index"`
	BookingID int64           `json:"bookingId" gorm:"not null;index"`
	AddonID   int64           `json:"addonId" gorm:"not null"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
}
