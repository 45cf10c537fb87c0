package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/audit"
	"marketplace/internal/domain"
	"marketplace/internal/modules/auth"
	"marketplace/internal/modules/booking"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/repository"
	"marketplace/internal/reqctx"
)

type Service struct {
	db       *gorm.DB
	bookings *booking.Service
	audit    audit.Recorder
}

func NewService(db *gorm.DB, bookings *booking.Service, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Service{db: db, bookings: bookings, audit: rec}
}

// ProviderIDFor maps a provider owner or an active staff member to the
// provider they act for.
func (s *Service) ProviderIDFor(ctx context.Context, p reqctx.Principal) (int64, error) {
	switch p.Role {
	case domain.RoleProvider:
		prov, err := repository.NewProviderRepository(s.db).GetByUserID(ctx, p.UserID)
		if errors.Is(err, repository.ErrProviderNotFound) {
			return 0, ErrNotProvider
		}
		if err != nil {
			return 0, err
		}
		return prov.ID, nil
	case domain.RoleProviderStaff:
		st, err := repository.NewStaffRepository(s.db).GetActiveByUserID(ctx, p.UserID)
		if errors.Is(err, repository.ErrStaffNotFound) {
			return 0, ErrNotProvider
		}
		if err != nil {
			return 0, err
		}
		return st.ProviderID, nil
	}
	return 0, ErrNotProvider
}

// Onboard turns a customer into a provider awaiting verification. The new
// role shows up in the next session token.
func (s *Service) Onboard(ctx context.Context, userID int64, req OnboardRequest) (*domain.ServiceProvider, error) {
	var prov *domain.ServiceProvider
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providers := repository.NewProviderRepository(tx)
		if _, err := providers.GetByUserID(ctx, userID); err == nil {
			return repository.ErrProviderExists
		} else if !errors.Is(err, repository.ErrProviderNotFound) {
			return err
		}

		prov = &domain.ServiceProvider{
			UserID:             userID,
			BusinessName:       strings.TrimSpace(req.BusinessName),
			Description:        req.Description,
			VerificationStatus: domain.VerificationPending,
			CommissionRate:     domain.DefaultCommissionRate,
			IsActive:           true,
		}
		if err := providers.Create(ctx, prov); err != nil {
			return err
		}
		return repository.NewUserRepository(tx).UpdateRole(ctx, userID, domain.RoleProvider)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Action:       "provider.onboard",
		ResourceType: "service_provider",
		ResourceID:   prov.ID,
		Changes:      map[string]any{"businessName": prov.BusinessName},
	})
	return prov, nil
}

func (s *Service) Profile(ctx context.Context, providerID int64) (*domain.ServiceProvider, error) {
	return repository.NewProviderRepository(s.db).GetByID(ctx, providerID)
}

func (s *Service) UpdateProfile(ctx context.Context, providerID int64, req UpdateProfileRequest) (*domain.ServiceProvider, error) {
	fields := map[string]any{}
	if req.BusinessName != nil {
		fields["business_name"] = strings.TrimSpace(*req.BusinessName)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	providers := repository.NewProviderRepository(s.db)
	if err := providers.Update(ctx, providerID, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		s.audit.Record(ctx, audit.Entry{
			Action: "provider.profile.update", ResourceType: "service_provider", ResourceID: providerID, Changes: fields,
		})
	}
	return providers.GetByID(ctx, providerID)
}

/* ---------- SERVICES ---------- */

func (s *Service) ListServices(ctx context.Context, providerID int64, p pagination.Params) ([]domain.Service, int64, error) {
	return repository.NewServiceRepository(s.db).List(ctx, repository.ServiceFilter{ProviderID: providerID}, p)
}

func (s *Service) CreateService(ctx context.Context, providerID int64, req CreateServiceRequest) (*domain.Service, error) {
	if err := checkPrice(req.BasePrice); err != nil {
		return nil, err
	}
	pricing := req.PricingType
	if pricing == "" {
		pricing = domain.PricingFixed
	}
	if !pricing.Valid() {
		return nil, ErrInvalidPricing
	}
	if _, err := repository.NewCategoryRepository(s.db).GetByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		ProviderID:      providerID,
		CategoryID:      req.CategoryID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		Currency:        currency(req.Currency),
		DurationMinutes: req.DurationMinutes,
		PricingType:     pricing,
		IsActive:        true,
	}
	if svc.DurationMinutes == 0 {
		svc.DurationMinutes = 60
	}
	if err := repository.NewServiceRepository(s.db).Create(ctx, svc); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		Action: "provider.service.create", ResourceType: "service", ResourceID: svc.ID,
		Changes: map[string]any{"name": svc.Name, "basePrice": svc.BasePrice},
	})
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, providerID, id int64, req UpdateServiceRequest) (*domain.Service, error) {
	fields := map[string]any{}
	if req.CategoryID != nil {
		if _, err := repository.NewCategoryRepository(s.db).GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *req.CategoryID
	}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.BasePrice != nil {
		if err := checkPrice(*req.BasePrice); err != nil {
			return nil, err
		}
		fields["base_price"] = *req.BasePrice
	}
	if req.DurationMinutes != nil {
		fields["duration_minutes"] = *req.DurationMinutes
	}
	if req.PricingType != nil {
		if !req.PricingType.Valid() {
			return nil, ErrInvalidPricing
		}
		fields["pricing_type"] = *req.PricingType
	}
	return s.updateService(ctx, providerID, id, fields)
}

func (s *Service) SetServiceStatus(ctx context.Context, providerID, id int64, active bool) (*domain.Service, error) {
	return s.updateService(ctx, providerID, id, map[string]any{"is_active": active})
}

func (s *Service) updateService(ctx context.Context, providerID, id int64, fields map[string]any) (*domain.Service, error) {
	services := repository.NewServiceRepository(s.db)
	if len(fields) == 0 {
		return services.GetOwned(ctx, id, providerID)
	}
	if err := services.Update(ctx, id, providerID, fields); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		Action: "provider.service.update", ResourceType: "service", ResourceID: id, Changes: fields,
	})
	return services.GetOwned(ctx, id, providerID)
}

func (s *Service) DeleteService(ctx context.Context, providerID, id int64) error {
	if err := repository.NewServiceRepository(s.db).Delete(ctx, id, providerID); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{Action: "provider.service.delete", ResourceType: "service", ResourceID: id})
	return nil
}

func (s *Service) AddAddon(ctx context.Context, providerID, serviceID int64, req CreateAddonRequest) (*domain.ServiceAddon, error) {
	if err := checkPrice(req.Price); err != nil {
		return nil, err
	}
	services := repository.NewServiceRepository(s.db)
	if _, err := services.GetOwned(ctx, serviceID, providerID); err != nil {
		return nil, err
	}
	a := &domain.ServiceAddon{ServiceID: serviceID, Name: strings.TrimSpace(req.Name), Price: req.Price}
	if err := services.CreateAddon(ctx, a); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		Action: "provider.service.update", ResourceType: "service", ResourceID: serviceID,
		Changes: map[string]any{"addonAdded": a.ID, "price": a.Price},
	})
	return a, nil
}

func (s *Service) RemoveAddon(ctx context.Context, providerID, serviceID, addonID int64) error {
	services := repository.NewServiceRepository(s.db)
	if _, err := services.GetOwned(ctx, serviceID, providerID); err != nil {
		return err
	}
	if err := services.DeleteAddon(ctx, serviceID, addonID); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{
		Action: "provider.service.update", ResourceType: "service", ResourceID: serviceID,
		Changes: map[string]any{"addonRemoved": addonID},
	})
	return nil
}

/* ---------- BOOKINGS ---------- */

func (s *Service) ListBookings(ctx context.Context, providerID int64, q booking.ListQuery, p pagination.Params) ([]domain.Booking, int64, error) {
	return s.bookings.ListForProvider(ctx, providerID, q, p)
}

func (s *Service) UpdateBookingStatus(ctx context.Context, providerID, id int64, next domain.BookingStatus, reason string) (*domain.Booking, error) {
	return s.bookings.ProviderUpdateStatus(ctx, providerID, id, next, reason)
}

/* ---------- STAFF ---------- */

func (s *Service) ListStaff(ctx context.Context, providerID int64) ([]domain.ProviderStaff, error) {
	return repository.NewStaffRepository(s.db).ListByProvider(ctx, providerID)
}

// AddStaff creates a provider_staff user and links it to the provider.
func (s *Service) AddStaff(ctx context.Context, providerID int64, req CreateStaffRequest) (*domain.ProviderStaff, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var st *domain.ProviderStaff
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := &domain.User{
			Email:        req.Email,
			PasswordHash: hash,
			Name:         strings.TrimSpace(req.Name),
			Phone:        req.Phone,
			Role:         domain.RoleProviderStaff,
			Status:       domain.UserActive,
		}
		if err := repository.NewUserRepository(tx).Create(ctx, u); err != nil {
			return err
		}
		st = &domain.ProviderStaff{ProviderID: providerID, UserID: u.ID, Position: req.Position}
		if err := repository.NewStaffRepository(tx).Create(ctx, st); err != nil {
			return err
		}
		st.User = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Action: "provider.staff.create", ResourceType: "provider_staff", ResourceID: st.ID,
		Changes: map[string]any{"userId": st.UserID, "position": st.Position},
	})
	return st, nil
}

func (s *Service) RemoveStaff(ctx context.Context, providerID, staffID int64) error {
	if err := repository.NewStaffRepository(s.db).Deactivate(ctx, staffID, providerID); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{Action: "provider.staff.deactivate", ResourceType: "provider_staff", ResourceID: staffID})
	return nil
}

func checkPrice(d decimal.Decimal) error {
	if d.IsNegative() || !d.Equal(d.Round(2)) {
		return ErrInvalidPrice
	}
	return nil
}

func currency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return "USD"
	}
	return c
}
