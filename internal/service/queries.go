package service

import (
	"time"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/repository"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// movementFilterFor converts a query-string filter into a repository filter,
// scoped by the access policy: base-scoped actors always see their own base
// regardless of what they asked for, admins may filter freely.
func movementFilterFor(actor Actor, q dto.MovementQuery) (repository.MovementFilter, error) {
	var f repository.MovementFilter

	if !actor.IsAdmin() {
		if actor.BaseID == nil {
			return f, rejectf(RejectAccessDenied, "account has no assigned base")
		}
		f.BaseID = actor.BaseID
	} else if q.BaseID != "" {
		id, err := uuid.Parse(q.BaseID)
		if err != nil {
			return f, rejectf(RejectInvalidInput, "invalid base_id filter")
		}
		f.BaseID = &id
	}

	if q.EquipmentTypeID != "" {
		id, err := uuid.Parse(q.EquipmentTypeID)
		if err != nil {
			return f, rejectf(RejectInvalidInput, "invalid equipment_type_id filter")
		}
		f.EquipmentTypeID = &id
	}
	if q.StartDate != "" {
		t, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return f, rejectf(RejectInvalidInput, "invalid start_date, expected YYYY-MM-DD")
		}
		f.From = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return f, rejectf(RejectInvalidInput, "invalid end_date, expected YYYY-MM-DD")
		}
		f.To = &t
	}
	return f, nil
}
