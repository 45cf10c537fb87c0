package payment

import (
	"github.com/shopspring/decimal"

	"marketplace/internal/domain"
)

type CreatePaymentRequest struct {
	BookingID     int64                `json:"bookingId" binding:"required,gt=0"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required"`
	Amount        *decimal.Decimal     `json:"amount"`
}

type ListQuery struct {
	Status    domain.PaymentRecordStatus `form:"status"`
	Method    domain.PaymentMethod       `form:"method"`
	BookingID int64                      `form:"bookingId"`
}

type PaymentResult struct {
	Payment *domain.Payment `json:"payment"`
	Booking *domain.Booking `json:"booking"`
	Wallet  *domain.Wallet  `json:"wallet,omitempty"`
}
