package repository

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/domain"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.ProviderStaff) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	s.TenantID = tid
	s.IsActive = true
	return conflict(r.db.WithContext(ctx).Omit("User").Create(s).Error, ErrStaffExists)
}

func (r *StaffRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.ProviderStaff, error) {
	q, _, err := scoped(ctx, r.db, "provider_staff")
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProviderStaff, 0)
	err = q.Preload("User").
		Where("provider_staff.provider_id = ?", providerID).
		Order("provider_staff.created_at ASC, provider_staff.id ASC").
		Find(&out).Error
	return out, err
}

// GetActiveByUserID finds the employment row of a provider_staff user.
func (r *StaffRepository) GetActiveByUserID(ctx context.Context, userID int64) (*domain.ProviderStaff, error) {
	q, _, err := scoped(ctx, r.db, "provider_staff")
	if err != nil {
		return nil, err
	}
	var s domain.ProviderStaff
	err = q.Where("provider_staff.user_id = ? AND provider_staff.is_active = ?", userID, true).First(&s).Error
	if err != nil {
		return nil, notFound(err, ErrStaffNotFound)
	}
	return &s, nil
}

func (r *StaffRepository) Deactivate(ctx context.Context, id, providerID int64) error {
	q, _, err := scoped(ctx, r.db, "provider_staff")
	if err != nil {
		return err
	}
	res := q.Model(&domain.ProviderStaff{}).
		Where("provider_staff.id = ? AND provider_staff.provider_id = ?", id, providerID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaffNotFound
	}
	return nil
}
