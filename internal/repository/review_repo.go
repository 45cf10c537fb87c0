package repository

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// RatingAggregate is the average and count of a set of reviews.
type RatingAggregate struct {
	Average float64
	Count   int64
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	rv.TenantID = tid
	return conflict(r.db.WithContext(ctx).Omit("Customer").Create(rv).Error, ErrReviewExists)
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	q, _, err := scoped(ctx, r.db, "reviews")
	if err != nil {
		return false, err
	}
	var n int64
	err = q.Model(&domain.Review{}).Where("reviews.booking_id = ?", bookingID).Count(&n).Error
	return n > 0, err
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID int64, p pagination.Params) ([]domain.Review, int64, error) {
	q, _, err := scoped(ctx, r.db, "reviews")
	if err != nil {
		return nil, 0, err
	}
	q = q.Model(&domain.Review{}).Where("reviews.service_id = ?", serviceID)
	return paginate[domain.Review](ctx, q, p, "reviews.created_at DESC, reviews.id DESC", "Customer")
}

func (r *ReviewRepository) Latest(ctx context.Context, serviceID int64, n int) ([]domain.Review, error) {
	q, _, err := scoped(ctx, r.db, "reviews")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, n)
	err = q.Preload("Customer").
		Where("reviews.service_id = ?", serviceID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Limit(n).
		Find(&out).Error
	return out, err
}

// CountsByRating returns how many reviews of serviceID carry each star value.
func (r *ReviewRepository) CountsByRating(ctx context.Context, serviceID int64) (map[int]int64, error) {
	q, _, err := scoped(ctx, r.db, "reviews")
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Rating int
		Count  int64
	}
	err = q.Model(&domain.Review{}).
		Select("reviews.rating AS rating, COUNT(*) AS count").
		Where("reviews.service_id = ?", serviceID).
		Group("reviews.rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[int]int64, len(rows))
	for _, row := range rows {
		out[row.Rating] = row.Count
	}
	return out, nil
}

func (r *ReviewRepository) ProviderAggregate(ctx context.Context, providerID int64) (RatingAggregate, error) {
	q, _, err := scoped(ctx, r.db, "reviews")
	if err != nil {
		return RatingAggregate{}, err
	}
	var agg RatingAggregate
	err = q.Model(&domain.Review{}).
		Select("COALESCE(AVG(reviews.rating), 0) AS average, COUNT(*) AS count").
		Where("reviews.provider_id = ?", providerID).
		Scan(&agg).Error
	return agg, err
}
