package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PricingType string

const (
	PricingFixed  PricingType = "fixed"
	PricingHourly PricingType = "hourly"
	PricingCustom PricingType = "custom"
)

func (p PricingType) Valid() bool {
	switch p {
	case PricingFixed, PricingHourly, PricingCustom:
		return true
	}
	return false
}

type ServiceCategory struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	TenantID    int64     `json:"tenantId" gorm:"not null;index;uniqueIndex:idx_categories_tenant_slug,priority:1"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"size:255;not null;uniqueIndex:idx_categories_tenant_slug,priority:2"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool      `json:"isActive" gorm:"not null;default:true"`
	SortOrder   int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Service is an offering a provider sells.
type Service struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	TenantID        int64           `json:"tenantId" gorm:"not null;index"`
	ProviderID      int64           `json:"providerId" gorm:"not null;index"`
	CategoryID      int64           `json:"categoryId" gorm:"not null;index"`
	Name            string          `json:"name" gorm:"size:255;not null"`
	Description     string          `json:"description,omitempty" gorm:"type:text"`
	BasePrice       decimal.Decimal `json:"basePrice" gorm:"type:decimal(12,2);not null"`
	Currency        string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	DurationMinutes int             `json:"durationMinutes" gorm:"not null;default:60"`
	PricingType     PricingType     `json:"pricingType" gorm:"size:20;not null;default:'fixed'"`
	IsActive        bool            `json:"isActive" gorm:"not null;default:true;index"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt  `json:"-" gorm:"index"`

	Provider *ServiceProvider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Category *ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

type ServiceAddon struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	TenantID  int64           `json:"tenantId" gorm:"not null;index"`
	ServiceID int64           `json:"serviceId" gorm:"not null;index"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	IsActive  bool            `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time       `json:"createdAt"`
}
