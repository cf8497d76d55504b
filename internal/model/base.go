package model

import (
	"time"

	"github.com/google/uuid"
)

// Base is a military installation holding inventory. Immutable once
// referenced by balances; deletion is an admin-only action.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Location  string
	CreatedAt time.Time
}
