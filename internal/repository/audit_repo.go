package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
)

// AuditRepository appends and reads; rows are never changed, only pruned
// by age.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

type AuditFilter struct {
	Action       string
	ResourceType string
	UserID       int64
}

func (r *AuditRepository) Create(ctx context.Context, l *domain.AuditLog) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	l.TenantID = tid
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *AuditRepository) List(ctx context.Context, f AuditFilter, p pagination.Params) ([]domain.AuditLog, int64, error) {
	q, _, err := scoped(ctx, r.db, "audit_logs")
	if err != nil {
		return nil, 0, err
	}
	q = q.Model(&domain.AuditLog{})
	if f.Action != "" {
		q = q.Where("audit_logs.action = ?", f.Action)
	}
	if f.ResourceType != "" {
		q = q.Where("audit_logs.resource_type = ?", f.ResourceType)
	}
	if f.UserID > 0 {
		q = q.Where("audit_logs.user_id = ?", f.UserID)
	}
	return paginate[domain.AuditLog](ctx, q, p, "audit_logs.created_at DESC, audit_logs.id DESC")
}

// Prune deletes audit rows older than before across every tenant and returns
// how many went. It is for maintenance tooling only.
func (r *AuditRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", before).Delete(&domain.AuditLog{})
	return res.RowsAffected, res.Error
}
