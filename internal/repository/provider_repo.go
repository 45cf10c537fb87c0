package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

type ProviderFilter struct {
	VerificationStatus domain.VerificationStatus
	IsActive           *bool
	IsFeatured         *bool
	Search             string
}

func (r *ProviderRepository) Create(ctx context.Context, p *domain.ServiceProvider) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	p.TenantID = tid
	if p.VerificationStatus == "" {
		p.VerificationStatus = domain.VerificationPending
	}
	if p.CommissionRate.IsZero() {
		p.CommissionRate = domain.DefaultCommissionRate
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(p).Error; err != nil {
		return conflict(err, ErrProviderExists)
	}
	// default:true swallows an explicit false on insert
	if !p.IsActive {
		return r.db.WithContext(ctx).Model(p).Update("is_active", false).Error
	}
	return nil
}

func (r *ProviderRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceProvider, error) {
	q, _, err := scoped(ctx, r.db, "service_providers")
	if err != nil {
		return nil, err
	}
	var p domain.ServiceProvider
	if err := q.Preload("User").Where("service_providers.id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err, ErrProviderNotFound)
	}
	return &p, nil
}

func (r *ProviderRepository) GetByUserID(ctx context.Context, userID int64) (*domain.ServiceProvider, error) {
	q, _, err := scoped(ctx, r.db, "service_providers")
	if err != nil {
		return nil, err
	}
	var p domain.ServiceProvider
	if err := q.Where("service_providers.user_id = ?", userID).First(&p).Error; err != nil {
		return nil, notFound(err, ErrProviderNotFound)
	}
	return &p, nil
}

// Update applies column updates to one provider. Keys are column names.
func (r *ProviderRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	q, _, err := scoped(ctx, r.db, "service_providers")
	if err != nil {
		return err
	}
	res := q.Model(&domain.ServiceProvider{}).Where("service_providers.id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProviderNotFound
	}
	return nil
}

// SetRating stores the recomputed review aggregate.
func (r *ProviderRepository) SetRating(ctx context.Context, id int64, rating decimal.Decimal, count int64) error {
	return r.Update(ctx, id, map[string]any{
		"rating":       rating.Round(2),
		"review_count": count,
	})
}

func (r *ProviderRepository) List(ctx context.Context, f ProviderFilter, p pagination.Params) ([]domain.ServiceProvider, int64, error) {
	q, _, err := scoped(ctx, r.db, "service_providers")
	if err != nil {
		return nil, 0, err
	}
	q = q.Model(&domain.ServiceProvider{})
	if f.VerificationStatus != "" {
		q = q.Where("service_providers.verification_status = ?", f.VerificationStatus)
	}
	if f.IsActive != nil {
		q = q.Where("service_providers.is_active = ?", *f.IsActive)
	}
	if f.IsFeatured != nil {
		q = q.Where("service_providers.is_featured = ?", *f.IsFeatured)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("LOWER(service_providers.business_name) LIKE ? ESCAPE '\\'", likePattern(strings.ToLower(s)))
	}
	return paginate[domain.ServiceProvider](ctx, q, p,
		"service_providers.is_featured DESC, service_providers.rating DESC, service_providers.id DESC", "User")
}
