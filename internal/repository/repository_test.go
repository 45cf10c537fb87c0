package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/database/dbtest"
	"marketplace/internal/domain"
	"marketplace/internal/pkg/apperr"
	"marketplace/internal/pkg/pagination"
)

func TestScopedRequiresTenant(t *testing.T) {
	db := dbtest.Open(t)

	_, err := NewUserRepository(db).GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTenantRequired)
}

func TestTenantRepository_ActiveOnly(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewTenantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Tenant{Name: "Acme", Subdomain: "Acme"}))
	require.NoError(t, repo.Create(ctx, &domain.Tenant{Name: "Old", Subdomain: "old", Status: domain.TenantSuspended}))

	got, err := repo.GetActiveBySubdomain(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	_, err = repo.GetActiveBySubdomain(ctx, "old")
	assert.ErrorIs(t, err, ErrTenantNotFound)

	old, err := repo.GetBySubdomain(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, domain.TenantSuspended, old.Status)
}

func TestUserRepository_EmailUniquePerTenant(t *testing.T) {
	db := dbtest.Open(t)
	ctxA := tenantCtx(t, db, "a")
	ctxB := tenantCtx(t, db, "b")

	createUser(t, ctxA, db, "Jo@Example.com", domain.RoleCustomer)

	repo := NewUserRepository(db)
	err := repo.Create(ctxA, &domain.User{Email: "jo@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	require.NoError(t, repo.Create(ctxB, &domain.User{Email: "jo@example.com", PasswordHash: "x"}))

	got, err := repo.GetByEmail(ctxA, " JO@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", got.Email)
}

func TestTenantIsolation(t *testing.T) {
	db := dbtest.Open(t)
	ctxA := tenantCtx(t, db, "a")
	ctxB := tenantCtx(t, db, "b")

	fx := createCatalog(t, ctxA, db, "pro@a.test", 10, "100")
	customer := createUser(t, ctxA, db, "cust@a.test", domain.RoleCustomer)

	bookings := NewBookingRepository(db)
	b := &domain.Booking{
		CustomerID:       customer.ID,
		ProviderID:       fx.provider.ID,
		ServiceID:        fx.service.ID,
		ScheduledAt:      time.Now().Add(24 * time.Hour),
		Status:           domain.BookingPending,
		PaymentStatus:    domain.PaymentPending,
		TotalAmount:      decimal.NewFromInt(100),
		CommissionRate:   decimal.NewFromInt(10),
		CommissionAmount: decimal.NewFromInt(10),
		Currency:         "USD",
	}
	require.NoError(t, bookings.CreateWithAddons(ctxA, b, nil))

	_, err := NewServiceRepository(db).GetByID(ctxB, fx.service.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = bookings.GetByID(ctxB, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = NewUserRepository(db).GetByID(ctxB, customer.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = bookings.UpdateStatus(ctxB, b.ID, domain.BookingCancelled, "nope")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	list, total, err := bookings.List(ctxB, BookingFilter{}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	still, err := bookings.GetByID(ctxA, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, still.Status)
}

func TestBookingRepository_CreateWithAddons(t *testing.T) {
	db := dbtest.Open(t)
	ctx := tenantCtx(t, db, "acme")
	fx := createCatalog(t, ctx, db, "pro@acme.test", 15, "100")
	customer := createUser(t, ctx, db, "cust@acme.test", domain.RoleCustomer)

	repo := NewBookingRepository(db)
	b := &domain.Booking{
		CustomerID:       customer.ID,
		ProviderID:       fx.provider.ID,
		ServiceID:        fx.service.ID,
		ScheduledAt:      time.Now().Add(time.Hour),
		Status:           domain.BookingPending,
		PaymentStatus:    domain.PaymentPending,
		TotalAmount:      decimal.RequireFromString("114.75"),
		CommissionRate:   decimal.NewFromInt(15),
		CommissionAmount: decimal.RequireFromString("17.21"),
		Currency:         "USD",
	}
	addons := []domain.BookingAddon{
		{AddonID: fx.addons[0].ID, Name: fx.addons[0].Name, Price: fx.addons[0].Price},
		{AddonID: fx.addons[1].ID, Name: fx.addons[1].Name, Price: fx.addons[1].Price},
	}
	require.NoError(t, repo.CreateWithAddons(ctx, b, addons))
	require.NotZero(t, b.ID)

	got, err := repo.GetForCustomer(ctx, b.ID, customer.ID)
	require.NoError(t, err)
	require.Len(t, got.Addons, 2)
	assert.Equal(t, "Windows", got.Addons[0].Name)
	assert.True(t, got.Addons[0].Price.Equal(decimal.RequireFromString("10.50")))
	assert.True(t, got.CommissionAmount.Equal(decimal.RequireFromString("17.21")))

	_, err = repo.GetForCustomer(ctx, b.ID, customer.ID+100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingRepository_CreateWithAddonsRollsBack(t *testing.T) {
	db := dbtest.Open(t)
	ctx := tenantCtx(t, db, "acme")
	fx := createCatalog(t, ctx, db, "pro@acme.test", 15, "100")

	// every addon insert fails after the booking row is written
	require.NoError(t, db.Exec("CREATE TRIGGER addon_fail BEFORE INSERT ON booking_addons BEGIN SELECT RAISE(ABORT, 'boom'); END").Error)

	repo := NewBookingRepository(db)
	b := &domain.Booking{
		CustomerID:       1,
		ProviderID:       fx.provider.ID,
		ServiceID:        fx.service.ID,
		ScheduledAt:      time.Now(),
		Status:           domain.BookingPending,
		PaymentStatus:    domain.PaymentPending,
		TotalAmount:      decimal.NewFromInt(100),
		CommissionRate:   decimal.NewFromInt(15),
		CommissionAmount: decimal.NewFromInt(15),
	}
	err := repo.CreateWithAddons(ctx, b, []domain.BookingAddon{{AddonID: fx.addons[0].ID, Name: "Windows", Price: fx.addons[0].Price}})
	require.Error(t, err)

	var n int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestServiceRepository_GetBookable(t *testing.T) {
	db := dbtest.Open(t)
	ctx := tenantCtx(t, db, "acme")
	fx := createCatalog(t, ctx, db, "pro@acme.test", 15, "100")

	repo := NewServiceRepository(db)
	got, err := repo.GetBookable(ctx, fx.service.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.provider.ID, got.ProviderID)
	assert.True(t, got.BasePrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.CommissionRate.Equal(decimal.NewFromInt(15)))
	assert.True(t, got.IsActive)
	assert.True(t, got.ProviderActive)

	require.NoError(t, repo.Delete(ctx, fx.service.ID, fx.provider.ID))
	_, err = repo.GetBookable(ctx, fx.service.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestServiceRepository_AddonsByIDs(t *testing.T) {
	db := dbtest.Open(t)
	ctx := tenantCtx(t, db, "acme")
	fx := createCatalog(t, ctx, db, "pro@acme.test", 10, "50")
	other := createCatalog(t, ctx, db, "pro2@acme.test", 10, "50")

	repo := NewServiceRepository(db)
	got, err := repo.AddonsByIDs(ctx, fx.service.ID, []int64{fx.addons[0].ID, other.addons[0].ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fx.addons[0].ID, got[0].ID)
}

func TestServiceRepository_PublicListing(t *testing.T) {
	db := dbtest.Open(t)
	ctx := tenantCtx(t, db, "acme")
	verified := createCatalog(t, ctx, db, "v@acme.test", 10, "80")
	pending := createCatalog(t, ctx, db, "p@acme.test", 10, "20")
	providers := NewProviderRepository(db)
	require.NoError(t, providers.Update(ctx, pending.provider.ID, map[string]any{"verification_status": domain.VerificationPending}))

	repo := NewServiceRepository(db)
	p := pagination.Params{Page: 1, Limit: 10}

	all, total, err := repo.List(ctx, ServiceFilter{}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	public, total, err := repo.List(ctx, ServiceFilter{PublicOnly: true}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, public, 1)
	assert.Equal(t, verified.service.ID, public[0].ID)
	require.NotNil(t, public[0].Provider)
	assert.Equal(t, verified.provider.BusinessName, public[0].Provider.BusinessName)

	maxPrice := decimal.NewFromInt(50)
	cheap, _, err := repo.List(ctx, ServiceFilter{MaxPrice: &maxPrice}, p)
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, pending.service.ID, cheap[0].ID)

	sorted, _, err := repo.List(ctx, ServiceFilter{Sort: SortPriceAsc}, p)
	require.NoError(t, err)
	require.Len(t, sorted, 2)
	assert.Equal(t, pending.service.ID, sorted[0].ID)

	found, _, err := repo.List(ctx, ServiceFilter{Search: "DEEP"}, p)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestPaginationRoundTrip(t *testing.T) {
	db := dbtest.Open(t)
	ctx := tenantCtx(t, db, "acme")
	repo := NewUserRepository(db)
	for i := 0; i < 25; i++ {
		createUser(t, ctx, db, "user"+string(rune('a'+i))+"@acme.test", domain.RoleCustomer)
	}

	seen := map[int64]bool{}
	for page := 1; page <= 3; page++ {
		items, total, err := repo.List(ctx, UserFilter{}, pagination.Params{Page: page, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 25, total)
		for _, u := range items {
			assert.False(t, seen[u.ID], "user %d returned twice", u.ID)
			seen[u.ID] = true
		}
	}
	assert.Len(t, seen, 25)

	beyond, total, err := repo.List(ctx, UserFilter{}, pagination.Params{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Empty(t, beyond)
}

func TestWalletRepository_GetOrCreate(t *testing.T) {
	db := dbtest.Open(t)
	ctx := tenantCtx(t, db, "acme")
	repo := NewWalletRepository(db)

	w1, err := repo.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	assert.True(t, w1.Balance.IsZero())

	w2, err := repo.GetOrCreateForUpdate(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, w1.ID, w2.ID)

	require.NoError(t, repo.SetBalance(ctx, w1.ID, decimal.RequireFromString("12.34")))
	require.NoError(t, repo.AddTransaction(ctx, &domain.WalletTransaction{
		WalletID: w1.ID, Type: domain.WalletCredit, Amount: decimal.RequireFromString("12.34"), BalanceAfter: decimal.RequireFromString("12.34"),
	}))

	w3, err := repo.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	assert.True(t, w3.Balance.Equal(decimal.RequireFromString("12.34")))

	txns, err := repo.RecentTransactions(ctx, w1.ID, 20)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestReviewRepository_Aggregates(t *testing.T) {
	db := dbtest.Open(t)
	ctx := tenantCtx(t, db, "acme")
	repo := NewReviewRepository(db)

	for i, rating := range []int{5, 5, 4, 1} {
		require.NoError(t, repo.Create(ctx, &domain.Review{
			BookingID: int64(i + 1), ServiceID: 1, ProviderID: 2, CustomerID: 3, Rating: rating,
		}))
	}
	err := repo.Create(ctx, &domain.Review{BookingID: 1, ServiceID: 1, ProviderID: 2, CustomerID: 3, Rating: 3})
	assert.ErrorIs(t, err, ErrReviewExists)

	counts, err := repo.CountsByRating(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[5])
	assert.EqualValues(t, 1, counts[4])
	assert.EqualValues(t, 0, counts[3])

	agg, err := repo.ProviderAggregate(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, agg.Count)
	assert.InDelta(t, 3.75, agg.Average, 0.001)
}

func TestStatsRepository_Snapshot(t *testing.T) {
	db := dbtest.Open(t)
	ctx := tenantCtx(t, db, "acme")
	fx := createCatalog(t, ctx, db, "pro@acme.test", 15, "100")
	customer := createUser(t, ctx, db, "cust@acme.test", domain.RoleCustomer)

	bookings := NewBookingRepository(db)
	for i := 0; i < 2; i++ {
		b := &domain.Booking{
			CustomerID: customer.ID, ProviderID: fx.provider.ID, ServiceID: fx.service.ID,
			ScheduledAt: time.Now(), Status: domain.BookingPending, PaymentStatus: domain.PaymentPending,
			TotalAmount: decimal.NewFromInt(100), CommissionRate: decimal.NewFromInt(15), CommissionAmount: decimal.NewFromInt(15),
		}
		require.NoError(t, bookings.CreateWithAddons(ctx, b, nil))
		if i == 0 {
			require.NoError(t, bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentPaid))
		}
	}

	st, err := NewStatsRepository(db).Snapshot(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Users)
	assert.EqualValues(t, 1, st.Customers)
	assert.EqualValues(t, 1, st.VerifiedProviders)
	assert.EqualValues(t, 2, st.Bookings)
	assert.EqualValues(t, 1, st.PaidBookings)
	assert.True(t, st.GrossVolume.Equal(decimal.NewFromInt(100)))
	assert.True(t, st.Commission.Equal(decimal.NewFromInt(15)))
}

func TestAuditRepository_PruneSpansTenants(t *testing.T) {
	db := dbtest.Open(t)
	acme := tenantCtx(t, db, "acme")
	globex := tenantCtx(t, db, "globex")
	repo := NewAuditRepository(db)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(acme, &domain.AuditLog{Action: "a.old", ResourceType: "booking", CreatedAt: old}))
	require.NoError(t, repo.Create(globex, &domain.AuditLog{Action: "g.old", ResourceType: "booking", CreatedAt: old}))
	require.NoError(t, repo.Create(acme, &domain.AuditLog{Action: "a.new", ResourceType: "booking"}))

	n, err := repo.Prune(context.Background(), time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	items, total, err := repo.List(acme, AuditFilter{}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "a.new", items[0].Action)
}
