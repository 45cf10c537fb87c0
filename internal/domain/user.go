package domain

import "time"

type UserRole string

const (
	RoleCustomer      UserRole = "customer"
	RoleProvider      UserRole = "provider"
	RoleProviderStaff UserRole = "provider_staff"
	RoleAdmin         UserRole = "admin"
	RoleSuperAdmin    UserRole = "super_admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleProviderStaff, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserSuspended
}

type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	TenantID     int64      `json:"tenantId" gorm:"not null;index;uniqueIndex:idx_users_tenant_email,priority:1"`
	Email        string     `json:"email" gorm:"size:255;not null;uniqueIndex:idx_users_tenant_email,priority:2"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Name         string     `json:"name" gorm:"size:255"`
	Phone        string     `json:"phone,omitempty" gorm:"size:32"`
	Role         UserRole   `json:"role" gorm:"size:20;not null;default:'customer';index"`
	Status       UserStatus `json:"status" gorm:"size:20;not null;default:'active'"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
