package model

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentType is a catalog entry (e.g. "M4 Carbine", "5.56mm Ammo").
// LowStockThreshold > 0 enables async low-stock alerts when a debit drops a
// base's balance to or below the threshold.
type EquipmentType struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string    `gorm:"uniqueIndex;not null"`
	Category          string    `gorm:"not null"` // "Vehicle" | "Weapon" | "Ammunition" | ...
	Unit              string    `gorm:"not null;default:'units'"`
	LowStockThreshold int       `gorm:"not null;default:0"` // 0 = alerts disabled
	CreatedAt         time.Time
}
