package repository

import (
	"context"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"

	"gorm.io/gorm"
)

// AuditLogRepository persists audit entries. Writes happen on the worker
// side of the audit queue, never inside a ledger transaction.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository { return &auditRepo{db: db} }

func (r *auditRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepo) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
