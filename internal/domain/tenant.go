package domain

import "time"

type TenantPlan string

const (
	PlanFree       TenantPlan = "free"
	PlanBasic      TenantPlan = "basic"
	PlanPro        TenantPlan = "pro"
	PlanEnterprise TenantPlan = "enterprise"
)

type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
	TenantCancelled TenantStatus = "cancelled"
)

// Tenant is an isolated marketplace. Every other table references it.
type Tenant struct {
	ID           int64        `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"size:255;not null"`
	Subdomain    string       `json:"subdomain" gorm:"size:63;not null;uniqueIndex"`
	Plan         TenantPlan   `json:"plan" gorm:"size:20;not null;default:'free'"`
	Status       TenantStatus `json:"status" gorm:"size:20;not null;default:'active';index"`
	LogoURL      string       `json:"logoUrl,omitempty" gorm:"size:512"`
	PrimaryColor string       `json:"primaryColor,omitempty" gorm:"size:16"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
