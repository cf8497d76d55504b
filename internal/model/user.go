package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Admin has global authority over every base; commanders and
// logistics officers are scoped to their home base.
const (
	RoleAdmin     = "admin"
	RoleCommander = "commander"
	RoleLogistics = "logistics"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null"` // "admin" | "commander" | "logistics"
	BaseID       *uuid.UUID `gorm:"type:uuid;index"` // home base; nil for admins
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time

	Base *Base `gorm:"foreignKey:BaseID"`
}
