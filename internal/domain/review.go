package domain

import "time"

type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	TenantID   int64     `json:"tenantId" gorm:"not null;index"`
	BookingID  int64     `json:"bookingId" gorm:"not null;uniqueIndex"`
	ServiceID  int64     `json:"serviceId" gorm:"not null;index"`
	ProviderID int64     `json:"providerId" gorm:"not null;index"`
	CustomerID int64     `json:"customerId" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Customer *User `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}
