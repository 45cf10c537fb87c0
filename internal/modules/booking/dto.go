package booking

import (
	"time"

	"marketplace/internal/domain"
)

type CreateBookingRequest struct {
	ServiceID   int64      `json:"serviceId" binding:"required,gt=0"`
	ProviderID  int64      `json:"providerId" binding:"required,gt=0"`
	ScheduledAt *time.Time `json:"scheduledAt" binding:"required"`
	AddonIDs    []int64    `json:"addonIds" binding:"omitempty,max=50,dive,gt=0"`
	Notes       string     `json:"notes" binding:"omitempty,max=2000"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
	Reason string               `json:"reason" binding:"omitempty,max=1000"`
}

// ListQuery carries the list filters accepted on booking endpoints.
type ListQuery struct {
	Status        domain.BookingStatus `form:"status"`
	PaymentStatus domain.PaymentStatus `form:"paymentStatus"`
	ProviderID    int64                `form:"providerId"`
	CustomerID    int64                `form:"customerId"`
	From          *time.Time           `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To            *time.Time           `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}
