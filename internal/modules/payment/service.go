package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/audit"
	"marketplace/internal/domain"
	"marketplace/internal/modules/booking"
	"marketplace/internal/modules/wallet"
	"marketplace/internal/pkg/metrics"
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

// Pay captures the full booking total. Everything happens in one transaction:
// any failure, including an overdrawn wallet, leaves no trace.
func (s *Service) Pay(ctx context.Context, customerID int64, req CreatePaymentRequest) (*PaymentResult, error) {
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidMethod
	}

	res := &PaymentResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookings := repository.NewBookingRepository(tx)

		b, err := bookings.LockForCustomer(ctx, req.BookingID, customerID)
		if err != nil {
			return err
		}
		if b.Status.Terminal() {
			return ErrNotPayable
		}
		if b.PaymentStatus != domain.PaymentPending {
			return ErrAlreadyPaid
		}
		if req.Amount != nil && !req.Amount.Equal(b.TotalAmount) {
			return ErrAmountMismatch
		}

		p := &domain.Payment{
			BookingID:        b.ID,
			CustomerID:       customerID,
			Amount:           b.TotalAmount,
			Currency:         b.Currency,
			Method:           req.PaymentMethod,
			GatewayReference: uuid.NewString(),
			Status:           domain.PaymentRecordCompleted,
		}
		if err := repository.NewPaymentRepository(tx).Create(ctx, p); err != nil {
			return err
		}
		if err := bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentPaid); err != nil {
			return err
		}
		b.PaymentStatus = domain.PaymentPaid

		// free bookings have nothing to move
		if req.PaymentMethod == domain.MethodWallet && b.TotalAmount.IsPositive() {
			w, _, err := wallet.Debit(ctx, tx, customerID, b.TotalAmount, wallet.Reference{
				Type:        "payment",
				ID:          p.ID,
				Description: "Booking payment",
			})
			if err != nil {
				return err
			}
			res.Wallet = w
		}

		res.Payment = p
		res.Booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncPaymentCaptured(string(req.PaymentMethod))
	s.audit.Record(ctx, audit.Entry{
		Action:       "customer.payment.create",
		ResourceType: "payment",
		ResourceID:   res.Payment.ID,
		Changes: map[string]any{
			"bookingId": res.Booking.ID,
			"amount":    res.Payment.Amount,
			"method":    res.Payment.Method,
		},
	})
	return res, nil
}

// Refund reverses a paid booking. Wallet payments are credited back in the
// same transaction that flips the booking and payment rows.
func (s *Service) Refund(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var refunded *domain.Booking
	var prev domain.BookingStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookings := repository.NewBookingRepository(tx)
		payments := repository.NewPaymentRepository(tx)

		b, err := bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.PaymentStatus != domain.PaymentPaid {
			return ErrNotPaid
		}
		// a paid booking may have been cancelled before cancellation checked payment
		if b.Status != domain.BookingCancelled && !b.Status.CanTransitionTo(domain.BookingRefunded) {
			return booking.ErrInvalidTransition
		}

		p, err := payments.CompletedForBooking(ctx, b.ID)
		if err != nil && !errors.Is(err, repository.ErrPaymentNotFound) {
			return err
		}
		if p != nil {
			if err := payments.UpdateStatus(ctx, p.ID, domain.PaymentRecordRefunded); err != nil {
				return err
			}
			if p.Method == domain.MethodWallet && p.Amount.IsPositive() {
				_, _, err := wallet.Credit(ctx, tx, b.CustomerID, p.Amount, wallet.Reference{
					Type:        "refund",
					ID:          p.ID,
					Description: "Booking refund",
				})
				if err != nil {
					return err
				}
			}
		}

		if err := bookings.Refund(ctx, b.ID); err != nil {
			return err
		}
		prev = b.Status
		b.Status = domain.BookingRefunded
		b.PaymentStatus = domain.PaymentRefunded
		refunded = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Action:       "admin.booking.status",
		ResourceType: "booking",
		ResourceID:   refunded.ID,
		Changes:      map[string]any{"from": prev, "to": domain.BookingRefunded},
	})
	return refunded, nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID int64, q ListQuery, p pagination.Params) ([]domain.Payment, int64, error) {
	f := q.filter()
	f.CustomerID = customerID
	return repository.NewPaymentRepository(s.db).List(ctx, f, p)
}

func (s *Service) ListAll(ctx context.Context, q ListQuery, p pagination.Params) ([]domain.Payment, int64, error) {
	return repository.NewPaymentRepository(s.db).List(ctx, q.filter(), p)
}

func (q ListQuery) filter() repository.PaymentFilter {
	f := repository.PaymentFilter{BookingID: q.BookingID}
	switch q.Status {
	case domain.PaymentRecordPending, domain.PaymentRecordCompleted, domain.PaymentRecordFailed, domain.PaymentRecordRefunded:
		f.Status = q.Status
	}
	if q.Method.Valid() {
		f.Method = q.Method
	}
	return f
}
