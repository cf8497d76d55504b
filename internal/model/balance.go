package model

import (
	"time"

	"github.com/google/uuid"
)

// Balance is the ledger's core row: current on-hand quantity of one equipment
// type at one base. Created lazily on first credit, never deleted, only
// zeroed. CurrentBalance must stay >= 0 under every interleaving of
// concurrent operations; a CHECK constraint backs this up at the storage
// layer (see infra.applySchemaPatches).
//
// Balance rows are written only by the ledger services, inside a transaction,
// under a FOR UPDATE row lock.
type Balance struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BaseID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_base_equipment"`
	EquipmentTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_base_equipment"`
	CurrentBalance  int       `gorm:"not null;default:0"`
	LastUpdated     time.Time `gorm:"autoUpdateTime"`

	Base          *Base          `gorm:"foreignKey:BaseID"`
	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID"`
}

// TableName overrides GORM's default pluralization.
func (Balance) TableName() string { return "balances" }
