package repository

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"marketplace/internal/pkg/pagination"
)

// paginate runs the COUNT and the page SELECT of q concurrently.
func paginate[T any](ctx context.Context, q *gorm.DB, p pagination.Params, order string, preloads ...string) ([]T, int64, error) {
	countQ := q.Session(&gorm.Session{})
	findQ := q.Session(&gorm.Session{})
	for _, rel := range preloads {
		findQ = findQ.Preload(rel)
	}

	var total int64
	items := make([]T, 0, p.Limit)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return countQ.Count(&total).Error
	})
	g.Go(func() error {
		return findQ.Order(order).Limit(p.Limit).Offset(p.Offset()).Find(&items).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func likePattern(term string) string {
	return "%" + escapeLike(term) + "%"
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
