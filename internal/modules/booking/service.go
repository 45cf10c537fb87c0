package booking

import (
	"context"

	"marketplace/internal/audit"
	"marketplace/internal/domain"
	"marketplace/internal/pkg/metrics"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/repository"
)

type Service struct {
	bookings BookingRepository
	catalog  CatalogReader
	audit    audit.Recorder
}

func NewService(bookings BookingRepository, catalog CatalogReader, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Service{bookings: bookings, catalog: catalog, audit: rec}
}

// Create prices and stores a pending booking for customerID. The commission
// rate in force at this moment is copied onto the booking.
func (s *Service) Create(ctx context.Context, customerID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if req.ScheduledAt == nil || req.ScheduledAt.IsZero() {
		return nil, ErrScheduleRequired
	}

	svc, err := s.catalog.GetBookable(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive || !svc.ProviderActive || svc.ProviderID != req.ProviderID {
		return nil, repository.ErrServiceNotFound
	}

	ids := uniqueIDs(req.AddonIDs)
	addons, err := s.catalog.AddonsByIDs(ctx, svc.ServiceID, ids)
	if err != nil {
		return nil, err
	}
	if len(addons) != len(ids) {
		return nil, ErrInvalidAddon
	}

	total := svc.BasePrice
	snapshots := make([]domain.BookingAddon, 0, len(addons))
	for _, a := range addons {
		total = total.Add(a.Price)
		snapshots = append(snapshots, domain.BookingAddon{AddonID: a.ID, Name: a.Name, Price: a.Price})
	}
	total = total.Round(2)

	currency := svc.Currency
	if currency == "" {
		currency = "USD"
	}
	b := &domain.Booking{
		CustomerID:       customerID,
		ProviderID:       svc.ProviderID,
		ServiceID:        svc.ServiceID,
		ScheduledAt:      req.ScheduledAt.UTC(),
		Notes:            req.Notes,
		Status:           domain.BookingPending,
		PaymentStatus:    domain.PaymentPending,
		TotalAmount:      total,
		CommissionRate:   svc.CommissionRate,
		CommissionAmount: domain.ComputeCommission(total, svc.CommissionRate),
		Currency:         currency,
	}
	if err := s.bookings.CreateWithAddons(ctx, b, snapshots); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.audit.Record(ctx, audit.Entry{
		Action:       "customer.booking.create",
		ResourceType: "booking",
		ResourceID:   b.ID,
		Changes: map[string]any{
			"serviceId":        b.ServiceID,
			"totalAmount":      b.TotalAmount,
			"commissionAmount": b.CommissionAmount,
		},
	})
	return b, nil
}

func (s *Service) GetForCustomer(ctx context.Context, customerID, id int64) (*domain.Booking, error) {
	return s.bookings.GetForCustomer(ctx, id, customerID)
}

func (s *Service) ListForCustomer(ctx context.Context, customerID int64, q ListQuery, p pagination.Params) ([]domain.Booking, int64, error) {
	f := q.filter()
	f.CustomerID = customerID
	f.ProviderID = 0
	return s.bookings.List(ctx, f, p)
}

func (s *Service) ListForProvider(ctx context.Context, providerID int64, q ListQuery, p pagination.Params) ([]domain.Booking, int64, error) {
	f := q.filter()
	f.ProviderID = providerID
	return s.bookings.List(ctx, f, p)
}

func (s *Service) ListAll(ctx context.Context, q ListQuery, p pagination.Params) ([]domain.Booking, int64, error) {
	return s.bookings.List(ctx, q.filter(), p)
}

// Cancel lets a customer withdraw a booking that has not started.
func (s *Service) Cancel(ctx context.Context, customerID, id int64, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetForCustomer(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidTransition
	}
	return s.transition(ctx, b, domain.BookingCancelled, reason, "customer.booking.cancel")
}

// ProviderUpdateStatus moves one of the provider's bookings along its lifecycle.
// Refunds are not available to providers.
func (s *Service) ProviderUpdateStatus(ctx context.Context, providerID, id int64, next domain.BookingStatus, reason string) (*domain.Booking, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	b, err := s.bookings.GetForProvider(ctx, id, providerID)
	if err != nil {
		return nil, err
	}
	if next == domain.BookingRefunded {
		return nil, ErrInvalidTransition
	}
	return s.transition(ctx, b, next, reason, "provider.booking.status")
}

// AdminUpdateStatus is the admin variant; refunds go through the payment
// service because they move money.
func (s *Service) AdminUpdateStatus(ctx context.Context, id int64, next domain.BookingStatus, reason string) (*domain.Booking, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if next == domain.BookingRefunded {
		return nil, ErrInvalidTransition
	}
	return s.transition(ctx, b, next, reason, "admin.booking.status")
}

func (s *Service) transition(ctx context.Context, b *domain.Booking, next domain.BookingStatus, reason, action string) (*domain.Booking, error) {
	if !b.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	// cancelling would strand the payment; refunds cancel paid bookings
	if next == domain.BookingCancelled && b.PaymentStatus == domain.PaymentPaid {
		return nil, ErrPaidCancellation
	}
	prev := b.Status
	if err := s.bookings.UpdateStatus(ctx, b.ID, next, reason); err != nil {
		return nil, err
	}
	b.Status = next
	if next == domain.BookingCancelled && reason != "" {
		b.CancellationReason = reason
	}

	s.audit.Record(ctx, audit.Entry{
		Action:       action,
		ResourceType: "booking",
		ResourceID:   b.ID,
		Changes:      map[string]any{"from": prev, "to": next},
	})
	return b, nil
}

func (q ListQuery) filter() repository.BookingFilter {
	f := repository.BookingFilter{
		CustomerID: q.CustomerID,
		ProviderID: q.ProviderID,
		From:       q.From,
		To:         q.To,
	}
	if q.Status.Valid() {
		f.Status = q.Status
	}
	if q.PaymentStatus.Valid() {
		f.PaymentStatus = q.PaymentStatus
	}
	return f
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

