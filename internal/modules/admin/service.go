package admin

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/audit"
	"marketplace/internal/domain"
	"marketplace/internal/modules/booking"
	"marketplace/internal/modules/payment"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/repository"
)

var maxCommission = decimal.NewFromInt(100)

type Service struct {
	db       *gorm.DB
	bookings *booking.Service
	payments *payment.Service
	audit    audit.Recorder
	now      func() time.Time
}

func NewService(db *gorm.DB, bookings *booking.Service, payments *payment.Service, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Service{db: db, bookings: bookings, payments: payments, audit: rec, now: time.Now}
}

/* ==================== PROVIDERS ==================== */

func (s *Service) ListProviders(ctx context.Context, q ProviderQuery, p pagination.Params) ([]domain.ServiceProvider, int64, error) {
	f := repository.ProviderFilter{Search: q.Search, IsActive: q.IsActive}
	if q.VerificationStatus.Valid() {
		f.VerificationStatus = q.VerificationStatus
	}
	return repository.NewProviderRepository(s.db).List(ctx, f, p)
}

// CreateProvider promotes an existing customer. Admin-created providers
// start verified.
func (s *Service) CreateProvider(ctx context.Context, req CreateProviderRequest) (*domain.ServiceProvider, error) {
	rate := domain.DefaultCommissionRate
	if req.CommissionRate != nil {
		if err := checkCommission(*req.CommissionRate); err != nil {
			return nil, err
		}
		rate = *req.CommissionRate
	}

	now := s.now().UTC()
	prov := &domain.ServiceProvider{
		UserID:             req.UserID,
		BusinessName:       strings.TrimSpace(req.BusinessName),
		Description:        req.Description,
		VerificationStatus: domain.VerificationVerified,
		CommissionRate:     rate,
		IsActive:           true,
		VerifiedAt:         &now,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		u, err := users.GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		providers := repository.NewProviderRepository(tx)
		if _, err := providers.GetByUserID(ctx, req.UserID); err == nil {
			return repository.ErrProviderExists
		} else if !errors.Is(err, repository.ErrProviderNotFound) {
			return err
		}
		if u.Role != domain.RoleCustomer {
			return ErrNotCustomer
		}
		if err := providers.Create(ctx, prov); err != nil {
			return err
		}
		// a zero rate is replaced by the default on insert
		if rate.IsZero() {
			if err := providers.Update(ctx, prov.ID, map[string]any{"commission_rate": rate}); err != nil {
				return err
			}
			prov.CommissionRate = rate
		}
		return users.UpdateRole(ctx, req.UserID, domain.RoleProvider)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Action: "admin.provider.create", ResourceType: "service_provider", ResourceID: prov.ID,
		Changes: map[string]any{"userId": prov.UserID, "commissionRate": prov.CommissionRate},
	})
	return prov, nil
}

// UpdateProvider changes verification, commission and visibility flags.
// Commission changes never touch existing bookings.
func (s *Service) UpdateProvider(ctx context.Context, id int64, req UpdateProviderRequest) (*domain.ServiceProvider, error) {
	fields := map[string]any{}
	if req.VerificationStatus != nil {
		if !req.VerificationStatus.Valid() {
			return nil, ErrInvalidVerification
		}
		fields["verification_status"] = *req.VerificationStatus
		switch *req.VerificationStatus {
		case domain.VerificationVerified:
			fields["verified_at"] = s.now().UTC()
			fields["rejection_reason"] = ""
		default:
			fields["verified_at"] = nil
		}
	}
	if req.RejectionReason != nil {
		fields["rejection_reason"] = *req.RejectionReason
	}
	if req.CommissionRate != nil {
		if err := checkCommission(*req.CommissionRate); err != nil {
			return nil, err
		}
		fields["commission_rate"] = *req.CommissionRate
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		fields["is_featured"] = *req.IsFeatured
	}

	providers := repository.NewProviderRepository(s.db)
	if err := providers.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		s.audit.Record(ctx, audit.Entry{
			Action: "admin.provider.update", ResourceType: "service_provider", ResourceID: id, Changes: fields,
		})
	}
	return providers.GetByID(ctx, id)
}

/* ==================== CATEGORIES ==================== */

func (s *Service) ListCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return repository.NewCategoryRepository(s.db).List(ctx, false)
}

func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*domain.ServiceCategory, error) {
	slug := req.Slug
	if slug == "" {
		slug = req.Name
	}
	slug = slugify(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}
	c := &domain.ServiceCategory{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if err := repository.NewCategoryRepository(s.db).Create(ctx, c); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		Action: "admin.category.create", ResourceType: "service_category", ResourceID: c.ID,
		Changes: map[string]any{"name": c.Name, "slug": c.Slug},
	})
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req UpdateCategoryRequest) (*domain.ServiceCategory, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug := slugify(*req.Slug)
		if slug == "" {
			return nil, ErrInvalidSlug
		}
		fields["slug"] = slug
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	return s.updateCategory(ctx, id, fields)
}

func (s *Service) SetCategoryStatus(ctx context.Context, id int64, active bool) (*domain.ServiceCategory, error) {
	return s.updateCategory(ctx, id, map[string]any{"is_active": active})
}

func (s *Service) updateCategory(ctx context.Context, id int64, fields map[string]any) (*domain.ServiceCategory, error) {
	categories := repository.NewCategoryRepository(s.db)
	if err := categories.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		s.audit.Record(ctx, audit.Entry{
			Action: "admin.category.update", ResourceType: "service_category", ResourceID: id, Changes: fields,
		})
	}
	return categories.GetByID(ctx, id)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := repository.NewCategoryRepository(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{Action: "admin.category.delete", ResourceType: "service_category", ResourceID: id})
	return nil
}

/* ==================== BOOKINGS & PAYMENTS ==================== */

func (s *Service) ListBookings(ctx context.Context, q booking.ListQuery, p pagination.Params) ([]domain.Booking, int64, error) {
	return s.bookings.ListAll(ctx, q, p)
}

// UpdateBookingStatus routes refunds through the payment service so money
// moves back in the same transaction as the status change.
func (s *Service) UpdateBookingStatus(ctx context.Context, id int64, next domain.BookingStatus, reason string) (*domain.Booking, error) {
	if next == domain.BookingRefunded {
		return s.payments.Refund(ctx, id)
	}
	return s.bookings.AdminUpdateStatus(ctx, id, next, reason)
}

func (s *Service) ListPayments(ctx context.Context, q payment.ListQuery, p pagination.Params) ([]domain.Payment, int64, error) {
	return s.payments.ListAll(ctx, q, p)
}

/* ==================== USERS ==================== */

func (s *Service) ListUsers(ctx context.Context, q UserQuery, p pagination.Params) ([]domain.User, int64, error) {
	f := repository.UserFilter{Search: q.Search}
	if q.Role.Valid() {
		f.Role = q.Role
	}
	if q.Status.Valid() {
		f.Status = q.Status
	}
	return repository.NewUserRepository(s.db).List(ctx, f, p)
}

func (s *Service) SetUserStatus(ctx context.Context, actorID, id int64, status domain.UserStatus) (*domain.User, error) {
	if !status.Valid() {
		return nil, ErrInvalidUserStatus
	}
	if actorID == id {
		return nil, ErrSelfStatusChange
	}
	users := repository.NewUserRepository(s.db)
	if err := users.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		Action: "admin.user.status", ResourceType: "user", ResourceID: id,
		Changes: map[string]any{"status": status},
	})
	return users.GetByID(ctx, id)
}

/* ==================== AUDIT & STATS ==================== */

func (s *Service) ListAuditLogs(ctx context.Context, q AuditQuery, p pagination.Params) ([]domain.AuditLog, int64, error) {
	return repository.NewAuditRepository(s.db).List(ctx, repository.AuditFilter{
		Action:       q.Action,
		ResourceType: q.ResourceType,
		UserID:       q.UserID,
	}, p)
}

func (s *Service) Stats(ctx context.Context) (*repository.Stats, error) {
	return repository.NewStatsRepository(s.db).Snapshot(ctx)
}

func checkCommission(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxCommission) || !rate.Equal(rate.Round(2)) {
		return ErrInvalidCommission
	}
	return nil
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
