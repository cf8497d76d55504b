package service

import (
	"context"
	"errors"
	"time"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentService interface {
	// RecordAssignment debits (base, equipment type) by the assigned or
	// expended quantity, atomically with the insertion of the record. The
	// balance row is read under an exclusive lock so concurrent debits
	// against the same pair are totally ordered and can never overdraw.
	RecordAssignment(ctx context.Context, actor Actor, req dto.RecordAssignmentRequest) (*dto.AssignmentResponse, error)
	ListAssignments(ctx context.Context, actor Actor, q dto.MovementQuery) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	balances    repository.BalanceRepository
	bases       repository.BaseRepository
	equipment   repository.EquipmentTypeRepository
	audit       AuditRecorder
	alerts      AlertNotifier
}

func NewAssignmentService(
	assignments repository.AssignmentRepository,
	balances repository.BalanceRepository,
	bases repository.BaseRepository,
	equipment repository.EquipmentTypeRepository,
	audit AuditRecorder,
	alerts AlertNotifier,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		balances:    balances,
		bases:       bases,
		equipment:   equipment,
		audit:       audit,
		alerts:      alerts,
	}
}

func (s *assignmentService) RecordAssignment(ctx context.Context, actor Actor, req dto.RecordAssignmentRequest) (*dto.AssignmentResponse, error) {
	baseID, err := uuid.Parse(req.BaseID)
	if err != nil {
		return nil, rejectf(RejectInvalidInput, "invalid base_id")
	}
	equipmentTypeID, err := uuid.Parse(req.EquipmentTypeID)
	if err != nil {
		return nil, rejectf(RejectInvalidInput, "invalid equipment_type_id")
	}
	if req.Quantity <= 0 {
		return nil, rejectf(RejectInvalidInput, "quantity must be positive")
	}
	if req.Kind != model.AssignmentAssigned && req.Kind != model.AssignmentExpended {
		return nil, rejectf(RejectInvalidInput, "kind must be assigned or expended")
	}
	var assigneeID *uuid.UUID
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		id, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			return nil, rejectf(RejectInvalidInput, "invalid assignee_id")
		}
		assigneeID = &id
	}

	if !actor.CanOperate(baseID) {
		return nil, rejectf(RejectAccessDenied, "access denied to assign or expend from this base")
	}

	base, err := s.bases.FindByID(ctx, baseID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, rejectf(RejectInvalidInput, "base does not exist")
	} else if err != nil {
		return nil, err
	}
	equipment, err := s.equipment.FindByID(ctx, equipmentTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, rejectf(RejectInvalidInput, "equipment type does not exist")
	} else if err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		BaseID:          baseID,
		EquipmentTypeID: equipmentTypeID,
		AssigneeID:      assigneeID,
		Quantity:        req.Quantity,
		Kind:            req.Kind,
		Notes:           req.Notes,
		CreatedBy:       actor.ID,
	}

	var remaining int
	txErr := runTx(ctx, s.balances.DB(), func(tx *gorm.DB) error {
		balance, err := s.balances.GetForUpdateTx(tx, baseID, equipmentTypeID)
		if errors.Is(err, repository.ErrNotFound) {
			return rejectf(RejectInsufficientInventory, "insufficient inventory at base")
		} else if err != nil {
			return err
		}
		if balance.CurrentBalance < req.Quantity {
			return rejectf(RejectInsufficientInventory,
				"insufficient inventory: have %d, need %d", balance.CurrentBalance, req.Quantity)
		}
		if err := s.balances.ApplyDeltaTx(tx, baseID, equipmentTypeID, -req.Quantity); err != nil {
			if errors.Is(err, repository.ErrNegativeBalance) {
				return rejectf(RejectInsufficientInventory, "insufficient inventory at base")
			}
			return err
		}
		remaining = balance.CurrentBalance - req.Quantity
		return s.assignments.CreateTx(tx, assignment)
	})
	if txErr != nil {
		return nil, txErr
	}

	action := ActionAssetAssigned
	if req.Kind == model.AssignmentExpended {
		action = ActionAssetExpended
	}
	s.audit.Record(ctx, AuditEvent{
		Actor:      actor,
		Action:     action,
		EntityType: "ASSIGNMENT",
		EntityID:   assignment.ID,
		NewValues:  assignment,
	})
	s.notifyIfLow(ctx, base, equipment, remaining)

	assignment.Base = base
	assignment.EquipmentType = equipment
	return assignmentToResponse(assignment), nil
}

func (s *assignmentService) notifyIfLow(ctx context.Context, base *model.Base, equipment *model.EquipmentType, remaining int) {
	if equipment.LowStockThreshold <= 0 || remaining > equipment.LowStockThreshold {
		return
	}
	s.alerts.LowStock(ctx, LowStockAlert{
		BaseName:      base.Name,
		EquipmentName: equipment.Name,
		Unit:          equipment.Unit,
		Remaining:     remaining,
		Threshold:     equipment.LowStockThreshold,
	})
}

func (s *assignmentService) ListAssignments(ctx context.Context, actor Actor, q dto.MovementQuery) ([]dto.AssignmentResponse, error) {
	filter, err := movementFilterFor(actor, q)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		resp = append(resp, *assignmentToResponse(&assignments[i]))
	}
	return resp, nil
}

func assignmentToResponse(a *model.Assignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:              a.ID.String(),
		BaseID:          a.BaseID.String(),
		EquipmentTypeID: a.EquipmentTypeID.String(),
		Quantity:        a.Quantity,
		Kind:            a.Kind,
		Notes:           a.Notes,
		CreatedBy:       a.CreatedBy.String(),
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.AssigneeID != nil {
		id := a.AssigneeID.String()
		resp.AssigneeID = &id
	}
	if a.Base != nil {
		resp.BaseName = a.Base.Name
	}
	if a.EquipmentType != nil {
		resp.EquipmentName = a.EquipmentType.Name
	}
	return resp
}
