package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/reqctx"
)

func tenantCtx(t *testing.T, db *gorm.DB, subdomain string) context.Context {
	t.Helper()
	tenant := &domain.Tenant{Name: subdomain, Subdomain: subdomain}
	require.NoError(t, NewTenantRepository(db).Create(context.Background(), tenant))
	return reqctx.WithTenant(context.Background(), reqctx.Tenant{ID: tenant.ID, Subdomain: tenant.Subdomain})
}

func createUser(t *testing.T, ctx context.Context, db *gorm.DB, email string, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "x", Name: email, Role: role}
	require.NoError(t, NewUserRepository(db).Create(ctx, u))
	return u
}

type catalogFixture struct {
	provider *domain.ServiceProvider
	category *domain.ServiceCategory
	service  *domain.Service
	addons   []domain.ServiceAddon
}

func createCatalog(t *testing.T, ctx context.Context, db *gorm.DB, email string, rate int64, price string) catalogFixture {
	t.Helper()
	owner := createUser(t, ctx, db, email, domain.RoleProvider)
	p := &domain.ServiceProvider{
		UserID:             owner.ID,
		BusinessName:       "Biz " + email,
		VerificationStatus: domain.VerificationVerified,
		CommissionRate:     decimal.NewFromInt(rate),
		IsActive:           true,
	}
	require.NoError(t, NewProviderRepository(db).Create(ctx, p))

	c := &domain.ServiceCategory{Name: "Cleaning", Slug: "cleaning-" + email, IsActive: true}
	require.NoError(t, NewCategoryRepository(db).Create(ctx, c))

	s := &domain.Service{
		ProviderID:      p.ID,
		CategoryID:      c.ID,
		Name:            "Deep clean",
		BasePrice:       decimal.RequireFromString(price),
		Currency:        "USD",
		DurationMinutes: 60,
		PricingType:     domain.PricingFixed,
		IsActive:        true,
	}
	services := NewServiceRepository(db)
	require.NoError(t, services.Create(ctx, s))

	a1 := &domain.ServiceAddon{ServiceID: s.ID, Name: "Windows", Price: decimal.RequireFromString("10.50")}
	a2 := &domain.ServiceAddon{ServiceID: s.ID, Name: "Oven", Price: decimal.RequireFromString("4.25")}
	require.NoError(t, services.CreateAddon(ctx, a1))
	require.NoError(t, services.CreateAddon(ctx, a2))

	return catalogFixture{provider: p, category: c, service: s, addons: []domain.ServiceAddon{*a1, *a2}}
}
