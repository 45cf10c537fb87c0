// Package audit appends best-effort audit entries for state-changing actions.
package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/logging"
	"marketplace/internal/repository"
	"marketplace/internal/reqctx"
)

type Entry struct {
	Action       string
	ResourceType string
	ResourceID   int64
	Changes      any
}

// Recorder is what services depend on.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

type Sink struct {
	repo *repository.AuditRepository
}

func NewSink(db *gorm.DB) *Sink {
	return &Sink{repo: repository.NewAuditRepository(db)}
}

// Record writes e with the tenant, actor and client IP taken from ctx.
// Failures are logged and never reach the caller.
func (s *Sink) Record(ctx context.Context, e Entry) {
	row := &domain.AuditLog{
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		IPAddress:    reqctx.ClientIPFrom(ctx),
	}
	if p, ok := reqctx.PrincipalFrom(ctx); ok {
		uid := p.UserID
		row.UserID = &uid
	}
	if e.Changes != nil {
		raw, err := json.Marshal(e.Changes)
		if err != nil {
			logging.FromContext(ctx).Warn("audit changes not serializable",
				zap.String("action", e.Action), zap.Error(err))
		} else {
			row.Changes = string(raw)
		}
	}

	if err := s.repo.Create(ctx, row); err != nil {
		logging.FromContext(ctx).Error("audit write failed",
			zap.String("action", e.Action),
			zap.String("resource_type", e.ResourceType),
			zap.Int64("resource_id", e.ResourceID),
			zap.Error(err))
	}
}

// Nop discards entries.
type Nop struct{}

func (Nop) Record(context.Context, Entry) {}
