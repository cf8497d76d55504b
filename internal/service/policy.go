package service

import (
	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"

	"github.com/google/uuid"
)

// Actor is the authenticated identity a handler extracts from the JWT claims.
type Actor struct {
	ID       uuid.UUID
	Username string
	Role     string
	BaseID   *uuid.UUID // home base; nil for admins
}

// Transfer finalization decisions.
const (
	DecisionComplete = model.TransferCompleted
	DecisionCancel   = model.TransferCancelled
)

// The access policy is a pure function of (role, home base, target base,
// operation). It is consulted before every mutating ledger operation and a
// denial short-circuits before any lock is taken.

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// CanOperate reports whether the actor may run base-scoped operations
// (purchase, assignment, transfer initiation) against targetBase. Admins may
// operate anywhere; everyone else only on their home base.
func (a Actor) CanOperate(targetBase uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.BaseID != nil && *a.BaseID == targetBase
}

// CanFinalizeTransfer applies the per-decision rule: completion belongs to
// the receiving side (destination base authority or admin), cancellation to
// the sending side (source base authority or admin).
func CanFinalizeTransfer(a Actor, decision string, fromBase, toBase uuid.UUID) bool {
	switch decision {
	case DecisionComplete:
		return a.CanOperate(toBase)
	case DecisionCancel:
		return a.CanOperate(fromBase)
	default:
		return false
	}
}
