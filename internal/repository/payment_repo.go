package repository

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type PaymentFilter struct {
	CustomerID int64
	BookingID  int64
	Status     domain.PaymentRecordStatus
	Method     domain.PaymentMethod
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	p.TenantID = tid
	return r.db.WithContext(ctx).Create(p).Error
}

// CompletedForBooking returns the captured payment of a booking.
func (r *PaymentRepository) CompletedForBooking(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	q, _, err := scoped(ctx, r.db, "payments")
	if err != nil {
		return nil, err
	}
	var p domain.Payment
	err = q.Where("payments.booking_id = ? AND payments.status = ?", bookingID, domain.PaymentRecordCompleted).
		Order("payments.id DESC").
		First(&p).Error
	if err != nil {
		return nil, notFound(err, ErrPaymentNotFound)
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentRecordStatus) error {
	q, _, err := scoped(ctx, r.db, "payments")
	if err != nil {
		return err
	}
	res := q.Model(&domain.Payment{}).Where("payments.id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) List(ctx context.Context, f PaymentFilter, p pagination.Params) ([]domain.Payment, int64, error) {
	q, _, err := scoped(ctx, r.db, "payments")
	if err != nil {
		return nil, 0, err
	}
	q = q.Model(&domain.Payment{})
	if f.CustomerID > 0 {
		q = q.Where("payments.customer_id = ?", f.CustomerID)
	}
	if f.BookingID > 0 {
		q = q.Where("payments.booking_id = ?", f.BookingID)
	}
	if f.Status != "" {
		q = q.Where("payments.status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("payments.method = ?", f.Method)
	}
	return paginate[domain.Payment](ctx, q, p, "payments.created_at DESC, payments.id DESC")
}
