package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// DefaultCommissionRate is applied when a provider is created without one.
var DefaultCommissionRate = decimal.NewFromInt(10)

// ServiceProvider is the business account of a user with role provider.
type ServiceProvider struct {
	ID                 int64              `json:"id" gorm:"primaryKey"`
	TenantID           int64              `json:"tenantId" gorm:"not null;index;uniqueIndex:idx_providers_tenant_user,priority:1"`
	UserID             int64              `json:"userId" gorm:"not null;uniqueIndex:idx_providers_tenant_user,priority:2"`
	BusinessName       string             `json:"businessName" gorm:"size:255;not null"`
	Description        string             `json:"description,omitempty" gorm:"type:text"`
	VerificationStatus VerificationStatus `json:"verificationStatus" gorm:"size:20;not null;default:'pending';index"`
	RejectionReason    string             `json:"rejectionReason,omitempty" gorm:"type:text"`
	Rating             decimal.Decimal    `json:"rating" gorm:"type:decimal(3,2);not null;default:0"`
	ReviewCount        int64              `json:"reviewCount" gorm:"not null;default:0"`
	CommissionRate     decimal.Decimal    `json:"commissionRate" gorm:"type:decimal(5,2);not null;default:10"`
	IsActive           bool               `json:"isActive" gorm:"not null;default:true"`
	IsFeatured         bool               `json:"isFeatured" gorm:"not null;default:false"`
	VerifiedAt         *time.Time         `json:"verifiedAt,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ProviderStaff links a provider_staff user to the provider that employs them.
type ProviderStaff struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	TenantID   int64     `json:"tenantId" gorm:"not null;index"`
	ProviderID int64     `json:"providerId" gorm:"not null;index"`
	UserID     int64     `json:"userId" gorm:"not null;uniqueIndex"`
	Position   string    `json:"position,omitempty" gorm:"size:100"`
	IsActive   bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (ProviderStaff) TableName() string { return "provider_staff" }
