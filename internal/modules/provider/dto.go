package provider

import (
	"github.com/shopspring/decimal"

	"marketplace/internal/domain"
)

type OnboardRequest struct {
	BusinessName string `json:"businessName" binding:"required,min=2,max=255"`
	Description  string `json:"description" binding:"omitempty,max=5000"`
}

type UpdateProfileRequest struct {
	BusinessName *string `json:"businessName" binding:"omitempty,min=2,max=255"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
}

type CreateServiceRequest struct {
	CategoryID      int64              `json:"categoryId" binding:"required,gt=0"`
	Name            string             `json:"name" binding:"required,min=2,max=255"`
	Description     string             `json:"description" binding:"omitempty,max=5000"`
	BasePrice       decimal.Decimal    `json:"basePrice"`
	Currency        string             `json:"currency" binding:"omitempty,len=3"`
	DurationMinutes int                `json:"durationMinutes" binding:"omitempty,gte=0,lte=10080"`
	PricingType     domain.PricingType `json:"pricingType"`
}

type UpdateServiceRequest struct {
	CategoryID      *int64              `json:"categoryId" binding:"omitempty,gt=0"`
	Name            *string             `json:"name" binding:"omitempty,min=2,max=255"`
	Description     *string             `json:"description" binding:"omitempty,max=5000"`
	BasePrice       *decimal.Decimal    `json:"basePrice"`
	DurationMinutes *int                `json:"durationMinutes" binding:"omitempty,gte=0,lte=10080"`
	PricingType     *domain.PricingType `json:"pricingType"`
}

type StatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type CreateAddonRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=255"`
	Price decimal.Decimal `json:"price"`
}

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Position string `json:"position" binding:"omitempty,max=100"`
}
