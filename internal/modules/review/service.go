package review

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/audit"
	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/repository"
)

type Service struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewService(db *gorm.DB, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Service{db: db, audit: rec}
}

// Create stores a review for the customer's own completed booking and
// recomputes the provider's rating in the same transaction.
func (s *Service) Create(ctx context.Context, customerID int64, req CreateReviewRequest) (*CreateReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	out := &CreateReviewResponse{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := repository.NewBookingRepository(tx).GetForCustomer(ctx, req.BookingID, customerID)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingCompleted {
			return ErrReviewNotAllowed
		}

		reviews := repository.NewReviewRepository(tx)
		exists, err := reviews.ExistsForBooking(ctx, b.ID)
		if err != nil {
			return err
		}
		if exists {
			return repository.ErrReviewExists
		}

		rv := &domain.Review{
			BookingID:  b.ID,
			ServiceID:  b.ServiceID,
			ProviderID: b.ProviderID,
			CustomerID: customerID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		}
		if err := reviews.Create(ctx, rv); err != nil {
			return err
		}

		agg, err := reviews.ProviderAggregate(ctx, b.ProviderID)
		if err != nil {
			return err
		}
		rating := decimal.NewFromFloat(agg.Average).Round(2)
		if err := repository.NewProviderRepository(tx).SetRating(ctx, b.ProviderID, rating, agg.Count); err != nil {
			return err
		}

		out.Review = rv
		out.ProviderRating = rating
		out.ReviewCount = agg.Count
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Action:       "customer.review.create",
		ResourceType: "review",
		ResourceID:   out.Review.ID,
		Changes:      map[string]any{"bookingId": out.Review.BookingID, "rating": out.Review.Rating},
	})
	return out, nil
}

func (s *Service) ListByService(ctx context.Context, serviceID int64, p pagination.Params) ([]domain.Review, int64, error) {
	return repository.NewReviewRepository(s.db).ListByService(ctx, serviceID, p)
}
