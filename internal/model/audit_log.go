package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog records every successful mutation: who did what to which entity,
// with before/after snapshots. Rows are written asynchronously by the audit
// worker; a failed write never affects the ledger mutation it describes.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"not null"` // e.g. "PURCHASE", "TRANSFER_INIT", "ASSET_EXPENDED"
	EntityType string    `gorm:"not null"`
	EntityID   *uuid.UUID      `gorm:"type:uuid;index"`
	OldValues  json.RawMessage `gorm:"type:jsonb"`
	NewValues  json.RawMessage `gorm:"type:jsonb"`
	IPAddress  string
	CreatedAt  time.Time `gorm:"index"`
}
