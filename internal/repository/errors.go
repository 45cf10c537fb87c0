package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"marketplace/internal/pkg/apperr"
)

var (
	ErrTenantRequired = apperr.New(apperr.KindInternal, "TENANT_REQUIRED", "tenant context missing")

	ErrTenantNotFound   = apperr.NotFound("TENANT_NOT_FOUND", "Tenant not found")
	ErrUserNotFound     = apperr.NotFound("USER_NOT_FOUND", "User not found")
	ErrProviderNotFound = apperr.NotFound("PROVIDER_NOT_FOUND", "Provider not found")
	ErrStaffNotFound    = apperr.NotFound("STAFF_NOT_FOUND", "Staff member not found")
	ErrCategoryNotFound = apperr.NotFound("CATEGORY_NOT_FOUND", "Category not found")
	ErrServiceNotFound  = apperr.NotFound("SERVICE_NOT_FOUND", "Service not found")
	ErrAddonNotFound    = apperr.NotFound("ADDON_NOT_FOUND", "Addon not found")
	ErrBookingNotFound  = apperr.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrPaymentNotFound  = apperr.NotFound("PAYMENT_NOT_FOUND", "Payment not found")

	ErrEmailTaken     = apperr.Conflict("EMAIL_TAKEN", "Email is already registered")
	ErrProviderExists = apperr.Conflict("PROVIDER_EXISTS", "User is already a provider")
	ErrSlugTaken      = apperr.Conflict("SLUG_TAKEN", "Category slug already exists")
	ErrCategoryInUse  = apperr.Conflict("CATEGORY_IN_USE", "Category still has services")
	ErrReviewExists   = apperr.Conflict("REVIEW_EXISTS", "Booking has already been reviewed")
	ErrStaffExists    = apperr.Conflict("STAFF_EXISTS", "User already belongs to a provider")
)

// IsUniqueViolation reports whether err is a unique-key violation on either driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func notFound(err error, sentinel *apperr.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func conflict(err error, sentinel *apperr.Error) error {
	if IsUniqueViolation(err) {
		return sentinel.Wrap(err)
	}
	return err
}
