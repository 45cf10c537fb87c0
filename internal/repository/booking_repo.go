package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type BookingFilter struct {
	CustomerID    int64
	ProviderID    int64
	Status        domain.BookingStatus
	PaymentStatus domain.PaymentStatus
	From          *time.Time
	To            *time.Time
}

// CreateWithAddons inserts the booking and its addon snapshots atomically.
// When r is already bound to a transaction gorm nests a savepoint.
func (r *BookingRepository) CreateWithAddons(ctx context.Context, b *domain.Booking, addons []domain.BookingAddon) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	b.TenantID = tid
	b.Addons = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return err
		}
		if len(addons) == 0 {
			b.Addons = []domain.BookingAddon{}
			return nil
		}
		for i := range addons {
			addons[i].TenantID = tid
			addons[i].BookingID = b.ID
		}
		if err := tx.Create(&addons).Error; err != nil {
			return err
		}
		b.Addons = addons
		return nil
	})
}

// GetByID loads any booking of the tenant with its addons.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.get(ctx, "bookings.id = ?", id)
}

func (r *BookingRepository) GetForCustomer(ctx context.Context, id, customerID int64) (*domain.Booking, error) {
	return r.get(ctx, "bookings.id = ? AND bookings.customer_id = ?", id, customerID)
}

func (r *BookingRepository) GetForProvider(ctx context.Context, id, providerID int64) (*domain.Booking, error) {
	return r.get(ctx, "bookings.id = ? AND bookings.provider_id = ?", id, providerID)
}

// LockForCustomer reads the booking with FOR UPDATE; only meaningful inside a transaction.
func (r *BookingRepository) LockForCustomer(ctx context.Context, id, customerID int64) (*domain.Booking, error) {
	q, _, err := scoped(ctx, r.db, "bookings")
	if err != nil {
		return nil, err
	}
	var b domain.Booking
	err = q.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("bookings.id = ? AND bookings.customer_id = ?", id, customerID).
		First(&b).Error
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return &b, nil
}

func (r *BookingRepository) get(ctx context.Context, where string, args ...any) (*domain.Booking, error) {
	q, _, err := scoped(ctx, r.db, "bookings")
	if err != nil {
		return nil, err
	}
	var b domain.Booking
	err = q.Preload("Addons", func(db *gorm.DB) *gorm.DB {
		return db.Order("booking_addons.id ASC")
	}).Where(where, args...).First(&b).Error
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return &b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	fields := map[string]any{"status": status}
	if status == domain.BookingCancelled && reason != "" {
		fields["cancellation_reason"] = reason
	}
	return r.update(ctx, id, fields)
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.update(ctx, id, map[string]any{"payment_status": status})
}

// Refund moves the booking to refunded on both status axes.
func (r *BookingRepository) Refund(ctx context.Context, id int64) error {
	return r.update(ctx, id, map[string]any{
		"status":         domain.BookingRefunded,
		"payment_status": domain.PaymentRefunded,
	})
}

func (r *BookingRepository) update(ctx context.Context, id int64, fields map[string]any) error {
	q, _, err := scoped(ctx, r.db, "bookings")
	if err != nil {
		return err
	}
	// commission columns are never part of an update
	res := q.Model(&domain.Booking{}).
		Where("bookings.id = ?", id).
		Omit("total_amount", "commission_rate", "commission_amount").
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter, p pagination.Params) ([]domain.Booking, int64, error) {
	q, _, err := scoped(ctx, r.db, "bookings")
	if err != nil {
		return nil, 0, err
	}
	q = q.Model(&domain.Booking{})
	if f.CustomerID > 0 {
		q = q.Where("bookings.customer_id = ?", f.CustomerID)
	}
	if f.ProviderID > 0 {
		q = q.Where("bookings.provider_id = ?", f.ProviderID)
	}
	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("bookings.payment_status = ?", f.PaymentStatus)
	}
	if f.From != nil {
		q = q.Where("bookings.scheduled_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("bookings.scheduled_at <= ?", *f.To)
	}
	return paginate[domain.Booking](ctx, q, p, "bookings.scheduled_at DESC, bookings.id DESC", "Addons")
}
