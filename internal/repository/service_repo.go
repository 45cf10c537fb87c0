package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type ServiceSort string

const (
	SortNewest    ServiceSort = "newest"
	SortPriceAsc  ServiceSort = "price_asc"
	SortPriceDesc ServiceSort = "price_desc"
	SortRating    ServiceSort = "rating"
)

type ServiceFilter struct {
	CategoryID int64
	ProviderID int64
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	// PublicOnly limits results to active services of active, verified providers.
	PublicOnly bool
	Sort       ServiceSort
}

// Bookable is the slice of a service and its provider needed to price a booking.
type Bookable struct {
	ServiceID      int64
	ProviderID     int64
	BasePrice      decimal.Decimal
	Currency       string
	IsActive       bool
	ProviderActive bool
	CommissionRate decimal.Decimal
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	s.TenantID = tid
	if err := r.db.WithContext(ctx).Omit("Provider", "Category").Create(s).Error; err != nil {
		return err
	}
	if !s.IsActive {
		return r.db.WithContext(ctx).Model(s).Update("is_active", false).Error
	}
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	q, _, err := scoped(ctx, r.db, "services")
	if err != nil {
		return nil, err
	}
	var s domain.Service
	err = q.Preload("Provider").Preload("Category").Where("services.id = ?", id).First(&s).Error
	if err != nil {
		return nil, notFound(err, ErrServiceNotFound)
	}
	return &s, nil
}

// GetOwned returns the service only when providerID owns it.
func (r *ServiceRepository) GetOwned(ctx context.Context, id, providerID int64) (*domain.Service, error) {
	q, _, err := scoped(ctx, r.db, "services")
	if err != nil {
		return nil, err
	}
	var s domain.Service
	err = q.Where("services.id = ? AND services.provider_id = ?", id, providerID).First(&s).Error
	if err != nil {
		return nil, notFound(err, ErrServiceNotFound)
	}
	return &s, nil
}

func (r *ServiceRepository) GetBookable(ctx context.Context, id int64) (*Bookable, error) {
	q, _, err := scoped(ctx, r.db, "services")
	if err != nil {
		return nil, err
	}
	var row Bookable
	res := q.Table("services").
		Select(`services.id AS service_id, services.provider_id, services.base_price, services.currency,
			services.is_active, sp.is_active AS provider_active, sp.commission_rate`).
		Joins("JOIN service_providers sp ON sp.id = services.provider_id AND sp.tenant_id = services.tenant_id").
		Where("services.id = ? AND services.deleted_at IS NULL", id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrServiceNotFound
	}
	return &row, nil
}

func (r *ServiceRepository) Update(ctx context.Context, id, providerID int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	q, _, err := scoped(ctx, r.db, "services")
	if err != nil {
		return err
	}
	res := q.Model(&domain.Service{}).
		Where("services.id = ? AND services.provider_id = ?", id, providerID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// Delete soft-deletes a service. Past bookings keep referencing it.
func (r *ServiceRepository) Delete(ctx context.Context, id, providerID int64) error {
	q, _, err := scoped(ctx, r.db, "services")
	if err != nil {
		return err
	}
	res := q.Where("services.id = ? AND services.provider_id = ?", id, providerID).Delete(&domain.Service{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) List(ctx context.Context, f ServiceFilter, p pagination.Params) ([]domain.Service, int64, error) {
	q, _, err := scoped(ctx, r.db, "services")
	if err != nil {
		return nil, 0, err
	}
	q = q.Model(&domain.Service{})
	if f.PublicOnly || f.Sort == SortRating {
		q = q.Joins("JOIN service_providers ON service_providers.id = services.provider_id AND service_providers.tenant_id = services.tenant_id")
	}
	if f.PublicOnly {
		q = q.Where("services.is_active = ? AND service_providers.is_active = ? AND service_providers.verification_status = ?",
			true, true, domain.VerificationVerified)
	}
	if f.CategoryID > 0 {
		q = q.Where("services.category_id = ?", f.CategoryID)
	}
	if f.ProviderID > 0 {
		q = q.Where("services.provider_id = ?", f.ProviderID)
	}
	if f.MinPrice != nil {
		q = q.Where("services.base_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("services.base_price <= ?", *f.MaxPrice)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := likePattern(strings.ToLower(s))
		q = q.Where("(LOWER(services.name) LIKE ? ESCAPE '\\' OR LOWER(services.description) LIKE ? ESCAPE '\\')", like, like)
	}

	order := "services.created_at DESC, services.id DESC"
	switch f.Sort {
	case SortPriceAsc:
		order = "services.base_price ASC, services.id ASC"
	case SortPriceDesc:
		order = "services.base_price DESC, services.id DESC"
	case SortRating:
		order = "service_providers.rating DESC, services.id DESC"
	}
	return paginate[domain.Service](ctx, q, p, order, "Provider", "Category")
}

func (r *ServiceRepository) CreateAddon(ctx context.Context, a *domain.ServiceAddon) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	a.TenantID = tid
	a.IsActive = true
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ServiceRepository) DeleteAddon(ctx context.Context, serviceID, addonID int64) error {
	q, _, err := scoped(ctx, r.db, "service_addons")
	if err != nil {
		return err
	}
	res := q.Where("service_addons.id = ? AND service_addons.service_id = ?", addonID, serviceID).
		Delete(&domain.ServiceAddon{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAddonNotFound
	}
	return nil
}

func (r *ServiceRepository) ListAddons(ctx context.Context, serviceID int64, activeOnly bool) ([]domain.ServiceAddon, error) {
	q, _, err := scoped(ctx, r.db, "service_addons")
	if err != nil {
		return nil, err
	}
	q = q.Where("service_addons.service_id = ?", serviceID)
	if activeOnly {
		q = q.Where("service_addons.is_active = ?", true)
	}
	out := make([]domain.ServiceAddon, 0)
	err = q.Order("service_addons.id ASC").Find(&out).Error
	return out, err
}

// AddonsByIDs returns the active addons of serviceID among ids. Foreign or
// inactive ids are silently absent from the result.
func (r *ServiceRepository) AddonsByIDs(ctx context.Context, serviceID int64, ids []int64) ([]domain.ServiceAddon, error) {
	out := make([]domain.ServiceAddon, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q, _, err := scoped(ctx, r.db, "service_addons")
	if err != nil {
		return nil, err
	}
	err = q.Where("service_addons.service_id = ? AND service_addons.is_active = ? AND service_addons.id IN ?", serviceID, true, ids).
		Order("service_addons.id ASC").
		Find(&out).Error
	return out, err
}
