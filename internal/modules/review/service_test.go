package review

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace/internal/database/dbtest"
	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/repository"
	"marketplace/internal/reqctx"
)

type fixture struct {
	db       *gorm.DB
	ctx      context.Context
	svc      *Service
	provider *domain.ServiceProvider
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	tenant := domain.Tenant{Name: "Acme", Subdomain: "acme", Plan: domain.PlanFree, Status: domain.TenantActive}
	require.NoError(t, db.Create(&tenant).Error)
	ctx := reqctx.WithTenant(context.Background(), reqctx.Tenant{ID: tenant.ID, Subdomain: "acme"})

	owner := &domain.User{Email: "pro@acme.test", PasswordHash: "x", Role: domain.RoleProvider}
	require.NoError(t, repository.NewUserRepository(db).Create(ctx, owner))
	p := &domain.ServiceProvider{
		UserID: owner.ID, BusinessName: "Sparkle", VerificationStatus: domain.VerificationVerified,
		CommissionRate: decimal.NewFromInt(10), IsActive: true,
	}
	require.NoError(t, repository.NewProviderRepository(db).Create(ctx, p))

	return &fixture{db: db, ctx: ctx, svc: NewService(db, nil), provider: p}
}

func (f *fixture) booking(t *testing.T, customerID int64, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	tenant, _ := reqctx.TenantFrom(f.ctx)
	b := &domain.Booking{
		TenantID:         tenant.ID,
		CustomerID:       customerID,
		ProviderID:       f.provider.ID,
		ServiceID:        5,
		ScheduledAt:      time.Now(),
		Status:           status,
		PaymentStatus:    domain.PaymentPaid,
		TotalAmount:      decimal.NewFromInt(100),
		CommissionRate:   decimal.NewFromInt(10),
		CommissionAmount: decimal.NewFromInt(10),
		Currency:         "USD",
	}
	require.NoError(t, f.db.Create(b).Error)
	return b
}

func TestCreate_RecomputesProviderRating(t *testing.T) {
	f := setup(t)
	b1 := f.booking(t, 1, domain.BookingCompleted)
	b2 := f.booking(t, 2, domain.BookingCompleted)

	out, err := f.svc.Create(f.ctx, 1, CreateReviewRequest{BookingID: b1.ID, Rating: 5, Comment: "Spotless"})
	require.NoError(t, err)
	assert.Equal(t, f.provider.ID, out.Review.ProviderID)
	assert.EqualValues(t, 1, out.ReviewCount)

	out, err = f.svc.Create(f.ctx, 2, CreateReviewRequest{BookingID: b2.ID, Rating: 4})
	require.NoError(t, err)
	assert.True(t, out.ProviderRating.Equal(decimal.RequireFromString("4.5")))
	assert.EqualValues(t, 2, out.ReviewCount)

	stored, err := repository.NewProviderRepository(f.db).GetByID(f.ctx, f.provider.ID)
	require.NoError(t, err)
	assert.True(t, stored.Rating.Equal(decimal.RequireFromString("4.5")))
	assert.EqualValues(t, 2, stored.ReviewCount)

	items, total, err := f.svc.ListByService(f.ctx, 5, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)
}

func TestCreate_OnePerBooking(t *testing.T) {
	f := setup(t)
	b := f.booking(t, 1, domain.BookingCompleted)

	_, err := f.svc.Create(f.ctx, 1, CreateReviewRequest{BookingID: b.ID, Rating: 3})
	require.NoError(t, err)

	_, err = f.svc.Create(f.ctx, 1, CreateReviewRequest{BookingID: b.ID, Rating: 1})
	assert.ErrorIs(t, err, repository.ErrReviewExists)
}

func TestCreate_Rejections(t *testing.T) {
	f := setup(t)
	pending := f.booking(t, 1, domain.BookingConfirmed)
	done := f.booking(t, 1, domain.BookingCompleted)

	_, err := f.svc.Create(f.ctx, 1, CreateReviewRequest{BookingID: pending.ID, Rating: 5})
	assert.ErrorIs(t, err, ErrReviewNotAllowed)

	_, err = f.svc.Create(f.ctx, 2, CreateReviewRequest{BookingID: done.ID, Rating: 5})
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)

	_, err = f.svc.Create(f.ctx, 1, CreateReviewRequest{BookingID: done.ID, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	var n int64
	require.NoError(t, f.db.Model(&domain.Review{}).Count(&n).Error)
	assert.Zero(t, n)
}
