package repository

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/reqctx"
)

// ForTenant restricts a query on table to one tenant's rows.
func ForTenant(table string, tenantID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".tenant_id = ?", tenantID)
	}
}

func tenantID(ctx context.Context) (int64, error) {
	t, ok := reqctx.TenantFrom(ctx)
	if !ok || t.ID == 0 {
		return 0, ErrTenantRequired
	}
	return t.ID, nil
}

// scoped binds db to ctx and to the request tenant. Every tenant-owned
// query goes through here so the tenant predicate cannot be forgotten.
func scoped(ctx context.Context, db *gorm.DB, table string) (*gorm.DB, int64, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return nil, 0, err
	}
	return db.WithContext(ctx).Scopes(ForTenant(table, tid)), tid, nil
}
