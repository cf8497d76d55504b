package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignment kinds. Both debit the balance identically; the kind is
// informational for reporting (assigned gear may come back, expended never).
const (
	AssignmentAssigned = "assigned"
	AssignmentExpended = "expended"
)

// Assignment is an immutable record of equipment handed to personnel or
// expended. Every assignment debits the (base, equipment type) balance by
// exactly Quantity, atomically with its insertion.
type Assignment struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BaseID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	EquipmentTypeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssigneeID      *uuid.UUID `gorm:"type:uuid"`
	Quantity        int        `gorm:"not null"`
	Kind            string     `gorm:"not null"` // "assigned" | "expended"
	Notes           string
	CreatedBy       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time

	Base          *Base          `gorm:"foreignKey:BaseID"`
	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID"`
	Assignee      *User          `gorm:"foreignKey:AssigneeID"`
	Creator       *User          `gorm:"foreignKey:CreatedBy"`
}
