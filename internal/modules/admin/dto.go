package admin

import (
	"github.com/shopspring/decimal"

	"marketplace/internal/domain"
)

type ProviderQuery struct {
	VerificationStatus domain.VerificationStatus `form:"verificationStatus"`
	Search             string                    `form:"search"`
	IsActive           *bool                     `form:"isActive"`
}

type CreateProviderRequest struct {
	UserID         int64            `json:"userId" binding:"required,gt=0"`
	BusinessName   string           `json:"businessName" binding:"required,min=2,max=255"`
	Description    string           `json:"description" binding:"omitempty,max=5000"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
}

type UpdateProviderRequest struct {
	VerificationStatus *domain.VerificationStatus `json:"verificationStatus"`
	RejectionReason    *string                    `json:"rejectionReason" binding:"omitempty,max=2000"`
	CommissionRate     *decimal.Decimal           `json:"commissionRate"`
	IsActive           *bool                      `json:"isActive"`
	IsFeatured         *bool                      `json:"isFeatured"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Slug        string `json:"slug" binding:"omitempty,max=255"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	SortOrder   int    `json:"sortOrder"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Slug        *string `json:"slug" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	SortOrder   *int    `json:"sortOrder"`
}

type StatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type UserQuery struct {
	Role   domain.UserRole   `form:"role"`
	Status domain.UserStatus `form:"status"`
	Search string            `form:"search"`
}

type UserStatusRequest struct {
	Status domain.UserStatus `json:"status" binding:"required"`
}

type AuditQuery struct {
	Action       string `form:"action"`
	ResourceType string `form:"resourceType"`
	UserID       int64  `form:"userId"`
}
