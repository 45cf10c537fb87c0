package repository

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/domain"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.ServiceCategory) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	c.TenantID = tid
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return conflict(err, ErrSlugTaken)
	}
	if !c.IsActive {
		return r.db.WithContext(ctx).Model(c).Update("is_active", false).Error
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceCategory, error) {
	q, _, err := scoped(ctx, r.db, "service_categories")
	if err != nil {
		return nil, err
	}
	var c domain.ServiceCategory
	if err := q.Where("service_categories.id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return &c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	q, _, err := scoped(ctx, r.db, "service_categories")
	if err != nil {
		return err
	}
	res := q.Model(&domain.ServiceCategory{}).Where("service_categories.id = ?", id).Updates(fields)
	if res.Error != nil {
		return conflict(res.Error, ErrSlugTaken)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category that no live service references.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inUse int64
		err := tx.Model(&domain.Service{}).
			Scopes(ForTenant("services", tid)).
			Where("services.category_id = ?", id).
			Count(&inUse).Error
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrCategoryInUse
		}
		res := tx.Scopes(ForTenant("service_categories", tid)).
			Where("service_categories.id = ?", id).
			Delete(&domain.ServiceCategory{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

// List returns categories in display order. activeOnly hides disabled ones.
func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]domain.ServiceCategory, error) {
	q, _, err := scoped(ctx, r.db, "service_categories")
	if err != nil {
		return nil, err
	}
	if activeOnly {
		q = q.Where("service_categories.is_active = ?", true)
	}
	out := make([]domain.ServiceCategory, 0)
	err = q.Order("service_categories.sort_order ASC, service_categories.name ASC").Find(&out).Error
	return out, err
}
