package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/apperr"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/repository"
)

const latestReviews = 5

var ErrInvalidPrice = apperr.Validation("INVALID_PRICE", "Price filters must be non-negative numbers")

type Service struct {
	tenants    *repository.TenantRepository
	services   *repository.ServiceRepository
	categories *repository.CategoryRepository
	providers  *repository.ProviderRepository
	reviews    *repository.ReviewRepository
}

func NewService(
	tenants *repository.TenantRepository,
	services *repository.ServiceRepository,
	categories *repository.CategoryRepository,
	providers *repository.ProviderRepository,
	reviews *repository.ReviewRepository,
) *Service {
	return &Service{tenants: tenants, services: services, categories: categories, providers: providers, reviews: reviews}
}

func (s *Service) Tenant(ctx context.Context, id int64) (*TenantInfo, error) {
	t, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TenantInfo{
		ID:           t.ID,
		Name:         t.Name,
		Subdomain:    t.Subdomain,
		Plan:         t.Plan,
		LogoURL:      t.LogoURL,
		PrimaryColor: t.PrimaryColor,
	}, nil
}

func (s *Service) ListServices(ctx context.Context, q ServiceQuery, p pagination.Params) ([]domain.Service, int64, error) {
	f, err := q.filter()
	if err != nil {
		return nil, 0, err
	}
	return s.services.List(ctx, f, p)
}

// GetService assembles the public detail page. Services that are inactive,
// deleted or belong to an inactive or unverified provider are not found.
func (s *Service) GetService(ctx context.Context, id int64) (*ServiceDetail, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !publiclyVisible(svc) {
		return nil, repository.ErrServiceNotFound
	}

	out := &ServiceDetail{Service: svc, Provider: summarize(svc.Provider)}
	var counts map[int]int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Addons, err = s.services.ListAddons(gctx, id, true)
		return err
	})
	g.Go(func() error {
		var err error
		out.Reviews, err = s.reviews.Latest(gctx, id, latestReviews)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.reviews.CountsByRating(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Rating, out.RatingBreakdown = breakdown(counts)
	return out, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return s.categories.List(ctx, true)
}

func (s *Service) ListProviders(ctx context.Context, q ProviderQuery, p pagination.Params) ([]domain.ServiceProvider, int64, error) {
	active := true
	return s.providers.List(ctx, repository.ProviderFilter{
		VerificationStatus: domain.VerificationVerified,
		IsActive:           &active,
		IsFeatured:         q.Featured,
		Search:             q.Search,
	}, p)
}

func publiclyVisible(svc *domain.Service) bool {
	if !svc.IsActive || svc.Provider == nil {
		return false
	}
	return svc.Provider.IsActive && svc.Provider.VerificationStatus == domain.VerificationVerified
}

func summarize(p *domain.ServiceProvider) ProviderSummary {
	if p == nil {
		return ProviderSummary{}
	}
	return ProviderSummary{
		ID:           p.ID,
		BusinessName: p.BusinessName,
		Description:  p.Description,
		Rating:       p.Rating,
		ReviewCount:  p.ReviewCount,
		IsFeatured:   p.IsFeatured,
	}
}

// breakdown returns the average rating and per-star buckets from 5 down to 1.
// Percentages are floored, so they never sum past 100.
func breakdown(counts map[int]int64) (RatingSummary, []RatingBucket) {
	var total, sum int64
	for stars, n := range counts {
		if stars < 1 || stars > 5 {
			continue
		}
		total += n
		sum += int64(stars) * n
	}

	buckets := make([]RatingBucket, 0, 5)
	for stars := 5; stars >= 1; stars-- {
		b := RatingBucket{Stars: stars, Count: counts[stars]}
		if total > 0 {
			b.Percentage = b.Count * 100 / total
		}
		buckets = append(buckets, b)
	}

	summary := RatingSummary{Average: decimal.Zero, Count: total}
	if total > 0 {
		summary.Average = decimal.NewFromInt(sum).Div(decimal.NewFromInt(total)).Round(1)
	}
	return summary, buckets
}

func (q ServiceQuery) filter() (repository.ServiceFilter, error) {
	f := repository.ServiceFilter{
		CategoryID: q.CategoryID,
		ProviderID: q.ProviderID,
		Search:     q.Search,
		PublicOnly: true,
	}
	var err error
	if f.MinPrice, err = parsePrice(q.MinPrice); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice(q.MaxPrice); err != nil {
		return f, err
	}
	switch repository.ServiceSort(q.Sort) {
	case repository.SortPriceAsc, repository.SortPriceDesc, repository.SortRating:
		f.Sort = repository.ServiceSort(q.Sort)
	default:
		f.Sort = repository.SortNewest
	}
	return f, nil
}

func parsePrice(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, ErrInvalidPrice
	}
	return &d, nil
}
