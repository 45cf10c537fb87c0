package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"marketplace/internal/domain"
)

// TenantRepository is the only repository that is not tenant-scoped: it is
// what resolves the tenant in the first place.
type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Create(ctx context.Context, t *domain.Tenant) error {
	t.Subdomain = strings.ToLower(strings.TrimSpace(t.Subdomain))
	if t.Status == "" {
		t.Status = domain.TenantActive
	}
	if t.Plan == "" {
		t.Plan = domain.PlanFree
	}
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound(err, ErrTenantNotFound)
	}
	return &t, nil
}

// GetBySubdomain returns the tenant regardless of status.
func (r *TenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.WithContext(ctx).
		Where("subdomain = ?", strings.ToLower(strings.TrimSpace(subdomain))).
		First(&t).Error
	if err != nil {
		return nil, notFound(err, ErrTenantNotFound)
	}
	return &t, nil
}

// GetActiveBySubdomain only matches tenants with status active.
func (r *TenantRepository) GetActiveBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.WithContext(ctx).
		Where("subdomain = ? AND status = ?", strings.ToLower(strings.TrimSpace(subdomain)), domain.TenantActive).
		First(&t).Error
	if err != nil {
		return nil, notFound(err, ErrTenantNotFound)
	}
	return &t, nil
}
