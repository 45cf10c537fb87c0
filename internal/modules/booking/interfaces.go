package booking

import (
	"context"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/repository"
)

// BookingRepository is the booking persistence used by Service.
type BookingRepository interface {
	CreateWithAddons(ctx context.Context, b *domain.Booking, addons []domain.BookingAddon) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetForCustomer(ctx context.Context, id, customerID int64) (*domain.Booking, error)
	GetForProvider(ctx context.Context, id, providerID int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
	List(ctx context.Context, f repository.BookingFilter, p pagination.Params) ([]domain.Booking, int64, error)
}

// CatalogReader prices a booking.
type CatalogReader interface {
	GetBookable(ctx context.Context, serviceID int64) (*repository.Bookable, error)
	AddonsByIDs(ctx context.Context, serviceID int64, ids []int64) ([]domain.ServiceAddon, error)
}
