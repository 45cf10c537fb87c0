package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"marketplace/internal/domain"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type Stats struct {
	Users             int64           `json:"users"`
	Customers         int64           `json:"customers"`
	Providers         int64           `json:"providers"`
	VerifiedProviders int64           `json:"verifiedProviders"`
	Bookings          int64           `json:"bookings"`
	PaidBookings      int64           `json:"paidBookings"`
	GrossVolume       decimal.Decimal `json:"grossVolume"`
	Commission        decimal.Decimal `json:"commission"`
}

// Snapshot computes tenant-wide counters. The independent queries run concurrently.
func (r *StatsRepository) Snapshot(ctx context.Context) (*Stats, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	st := &Stats{}

	count := func(dst *int64, model any, table string, where string, args ...any) func() error {
		return func() error {
			q := db.Model(model).Scopes(ForTenant(table, tid))
			if where != "" {
				q = q.Where(where, args...)
			}
			return q.Count(dst).Error
		}
	}

	var money struct {
		Gross      decimal.Decimal
		Commission decimal.Decimal
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(count(&st.Users, &domain.User{}, "users", ""))
	g.Go(count(&st.Customers, &domain.User{}, "users", "users.role = ?", domain.RoleCustomer))
	g.Go(count(&st.Providers, &domain.ServiceProvider{}, "service_providers", ""))
	g.Go(count(&st.VerifiedProviders, &domain.ServiceProvider{}, "service_providers",
		"service_providers.verification_status = ?", domain.VerificationVerified))
	g.Go(count(&st.Bookings, &domain.Booking{}, "bookings", ""))
	g.Go(count(&st.PaidBookings, &domain.Booking{}, "bookings", "bookings.payment_status = ?", domain.PaymentPaid))
	g.Go(func() error {
		return db.Model(&domain.Booking{}).
			Scopes(ForTenant("bookings", tid)).
			Select("COALESCE(SUM(bookings.total_amount), 0) AS gross, COALESCE(SUM(bookings.commission_amount), 0) AS commission").
			Where("bookings.payment_status = ?", domain.PaymentPaid).
			Scan(&money).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	st.GrossVolume = money.Gross.Round(2)
	st.Commission = money.Commission.Round(2)
	return st, nil
}
