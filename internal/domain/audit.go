package domain

import "time"

// AuditLog is append-only; old rows are removed by cmd/audit_prune.
type AuditLog struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	TenantID     int64     `json:"tenantId" gorm:"not null;index"`
	UserID       *int64    `json:"userId,omitempty" gorm:"index"`
	Action       string    `json:"action" gorm:"size:100;not null;index"`
	ResourceType string    `json:"resourceType" gorm:"size:50;not null"`
	ResourceID   int64     `json:"resourceId"`
	Changes      string    `json:"changes,omitempty" gorm:"type:text"`
	IPAddress    string    `json:"ipAddress,omitempty" gorm:"size:64"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
}
