package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is an immutable append-only record. Every purchase credits the
// (base, equipment type) balance by exactly Quantity, atomically with the
// insertion of this row.
type Purchase struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BaseID          uuid.UUID `gorm:"type:uuid;not null;index"`
	EquipmentTypeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity        int       `gorm:"not null"`
	Supplier        string
	UnitCost        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalCost       *decimal.Decimal `gorm:"type:decimal(14,2)"` // UnitCost * Quantity, fixed at record time
	PurchaseDate    time.Time        `gorm:"not null;index"`
	Notes           string
	CreatedBy       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time

	Base          *Base          `gorm:"foreignKey:BaseID"`
	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID"`
	Creator       *User          `gorm:"foreignKey:CreatedBy"`
}
