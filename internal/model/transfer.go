package model

import (
	"time"

	"github.com/google/uuid"
)

// Transfer status lifecycle: pending → completed | cancelled.
// Initiation debits the source balance immediately (the reservation); the
// destination is credited only on completion, the source refunded only on
// cancellation. Status is the sole mutable field on a transfer.
const (
	TransferPending   = "pending"
	TransferCompleted = "completed"
	TransferCancelled = "cancelled"
)

type Transfer struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FromBaseID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ToBaseID        uuid.UUID `gorm:"type:uuid;not null;index"`
	EquipmentTypeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity        int       `gorm:"not null"`
	Status          string    `gorm:"not null;default:'pending';index"`
	Notes           string
	CreatedBy       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	FromBase      *Base          `gorm:"foreignKey:FromBaseID"`
	ToBase        *Base          `gorm:"foreignKey:ToBaseID"`
	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID"`
	Creator       *User          `gorm:"foreignKey:CreatedBy"`
}
