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

type TransferService interface {
	// InitiateTransfer debits the source balance immediately and creates a
	// pending transfer. The debited quantity is in flight: it belongs to
	// neither base's spendable balance until the transfer is finalized.
	InitiateTransfer(ctx context.Context, actor Actor, req dto.InitiateTransferRequest) (*dto.TransferResponse, error)
	// FinalizeTransfer completes or cancels a pending transfer. Completion
	// credits the destination; cancellation refunds the source. Either way
	// the transfer reaches a terminal status exactly once.
	FinalizeTransfer(ctx context.Context, actor Actor, transferID string, decision string) (*dto.TransferResponse, error)
	GetTransfer(ctx context.Context, actor Actor, transferID string) (*dto.TransferResponse, error)
	ListTransfers(ctx context.Context, actor Actor, q dto.MovementQuery) ([]dto.TransferResponse, error)
}

type transferService struct {
	transfers repository.TransferRepository
	balances  repository.BalanceRepository
	bases     repository.BaseRepository
	equipment repository.EquipmentTypeRepository
	audit     AuditRecorder
}

func NewTransferService(
	transfers repository.TransferRepository,
	balances repository.BalanceRepository,
	bases repository.BaseRepository,
	equipment repository.EquipmentTypeRepository,
	audit AuditRecorder,
) TransferService {
	return &transferService{
		transfers: transfers,
		balances:  balances,
		bases:     bases,
		equipment: equipment,
		audit:     audit,
	}
}

func (s *transferService) InitiateTransfer(ctx context.Context, actor Actor, req dto.InitiateTransferRequest) (*dto.TransferResponse, error) {
	fromBaseID, err := uuid.Parse(req.FromBaseID)
	if err != nil {
		return nil, rejectf(RejectInvalidInput, "invalid from_base_id")
	}
	toBaseID, err := uuid.Parse(req.ToBaseID)
	if err != nil {
		return nil, rejectf(RejectInvalidInput, "invalid to_base_id")
	}
	equipmentTypeID, err := uuid.Parse(req.EquipmentTypeID)
	if err != nil {
		return nil, rejectf(RejectInvalidInput, "invalid equipment_type_id")
	}
	if req.Quantity <= 0 {
		return nil, rejectf(RejectInvalidInput, "quantity must be positive")
	}
	if fromBaseID == toBaseID {
		return nil, rejectf(RejectInvalidInput, "source and destination base must differ")
	}

	// Initiation is a source-side operation: only source base authority (or
	// an admin) may move inventory out.
	if !actor.CanOperate(fromBaseID) {
		return nil, rejectf(RejectAccessDenied, "access denied to transfer from this base")
	}

	fromBase, err := s.bases.FindByID(ctx, fromBaseID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, rejectf(RejectInvalidInput, "source base does not exist")
	} else if err != nil {
		return nil, err
	}
	toBase, err := s.bases.FindByID(ctx, toBaseID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, rejectf(RejectInvalidInput, "destination base does not exist")
	} else if err != nil {
		return nil, err
	}
	equipment, err := s.equipment.FindByID(ctx, equipmentTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, rejectf(RejectInvalidInput, "equipment type does not exist")
	} else if err != nil {
		return nil, err
	}

	transfer := &model.Transfer{
		FromBaseID:      fromBaseID,
		ToBaseID:        toBaseID,
		EquipmentTypeID: equipmentTypeID,
		Quantity:        req.Quantity,
		Status:          model.TransferPending,
		Notes:           req.Notes,
		CreatedBy:       actor.ID,
	}

	// Source debit and pending row commit or roll back as one unit.
	txErr := runTx(ctx, s.transfers.DB(), func(tx *gorm.DB) error {
		balance, err := s.balances.GetForUpdateTx(tx, fromBaseID, equipmentTypeID)
		if errors.Is(err, repository.ErrNotFound) {
			return rejectf(RejectInsufficientInventory, "insufficient inventory at source base")
		} else if err != nil {
			return err
		}
		if balance.CurrentBalance < req.Quantity {
			return rejectf(RejectInsufficientInventory,
				"insufficient inventory at source base: have %d, need %d",
				balance.CurrentBalance, req.Quantity)
		}
		if err := s.balances.ApplyDeltaTx(tx, fromBaseID, equipmentTypeID, -req.Quantity); err != nil {
			if errors.Is(err, repository.ErrNegativeBalance) {
				return rejectf(RejectInsufficientInventory, "insufficient inventory at source base")
			}
			return err
		}
		return s.transfers.CreateTx(tx, transfer)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.audit.Record(ctx, AuditEvent{
		Actor:      actor,
		Action:     ActionTransferInit,
		EntityType: "TRANSFER",
		EntityID:   transfer.ID,
		NewValues:  transfer,
	})

	transfer.FromBase = fromBase
	transfer.ToBase = toBase
	transfer.EquipmentType = equipment
	return transferToResponse(transfer), nil
}

func (s *transferService) FinalizeTransfer(ctx context.Context, actor Actor, transferID string, decision string) (*dto.TransferResponse, error) {
	id, err := uuid.Parse(transferID)
	if err != nil {
		return nil, rejectf(RejectInvalidInput, "invalid transfer id")
	}
	if decision != DecisionComplete && decision != DecisionCancel {
		return nil, rejectf(RejectInvalidInput, "status must be completed or cancelled")
	}

	var finalized *model.Transfer
	txErr := runTx(ctx, s.transfers.DB(), func(tx *gorm.DB) error {
		// Lock first: the row lock serializes racing finalizations, so the
		// state check below observes the committed terminal status of any
		// finalization that beat us here.
		transfer, err := s.transfers.FindByIDForUpdateTx(tx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return rejectf(RejectNotFound, "transfer not found")
		} else if err != nil {
			return err
		}
		if transfer.Status != model.TransferPending {
			return rejectf(RejectInvalidState, "transfer is already %s", transfer.Status)
		}
		if !CanFinalizeTransfer(actor, decision, transfer.FromBaseID, transfer.ToBaseID) {
			if decision == DecisionComplete {
				return rejectf(RejectAccessDenied, "only the destination base may complete this transfer")
			}
			return rejectf(RejectAccessDenied, "only the source base may cancel this transfer")
		}

		if decision == DecisionComplete {
			// Credit the destination. AddTx creates the balance row on the
			// destination's first receipt of this equipment type.
			if err := s.balances.AddTx(tx, transfer.ToBaseID, transfer.EquipmentTypeID, transfer.Quantity); err != nil {
				return err
			}
		} else {
			// Refund the source. The quantity was held in flight, so the
			// refund cannot overdraw; AddTx also covers the degenerate case
			// where the source row was deleted in between.
			if err := s.balances.AddTx(tx, transfer.FromBaseID, transfer.EquipmentTypeID, transfer.Quantity); err != nil {
				return err
			}
		}
		if err := s.transfers.UpdateStatusTx(tx, id, decision); err != nil {
			return err
		}
		transfer.Status = decision
		finalized = transfer
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	action := ActionTransferCompleted
	if decision == DecisionCancel {
		action = ActionTransferCancelled
	}
	s.audit.Record(ctx, AuditEvent{
		Actor:      actor,
		Action:     action,
		EntityType: "TRANSFER",
		EntityID:   finalized.ID,
		OldValues:  map[string]string{"status": model.TransferPending},
		NewValues:  map[string]string{"status": decision},
	})

	// Reload with associations for the response; fall back to the locked
	// copy if the read fails.
	if full, err := s.transfers.FindByID(ctx, id); err == nil {
		return transferToResponse(full), nil
	}
	return transferToResponse(finalized), nil
}

func (s *transferService) GetTransfer(ctx context.Context, actor Actor, transferID string) (*dto.TransferResponse, error) {
	id, err := uuid.Parse(transferID)
	if err != nil {
		return nil, rejectf(RejectInvalidInput, "invalid transfer id")
	}
	transfer, err := s.transfers.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, rejectf(RejectNotFound, "transfer not found")
	} else if err != nil {
		return nil, err
	}
	// Base-scoped actors may only see transfers their base is party to.
	if !actor.CanOperate(transfer.FromBaseID) && !actor.CanOperate(transfer.ToBaseID) {
		return nil, rejectf(RejectAccessDenied, "access denied to this transfer")
	}
	return transferToResponse(transfer), nil
}

func (s *transferService) ListTransfers(ctx context.Context, actor Actor, q dto.MovementQuery) ([]dto.TransferResponse, error) {
	var filter repository.TransferFilter

	if !actor.IsAdmin() {
		if actor.BaseID == nil {
			return nil, rejectf(RejectAccessDenied, "account has no assigned base")
		}
		filter.InvolvedBaseID = actor.BaseID
	} else if q.BaseID != "" {
		id, err := uuid.Parse(q.BaseID)
		if err != nil {
			return nil, rejectf(RejectInvalidInput, "invalid base_id filter")
		}
		filter.InvolvedBaseID = &id
	}
	if q.EquipmentTypeID != "" {
		id, err := uuid.Parse(q.EquipmentTypeID)
		if err != nil {
			return nil, rejectf(RejectInvalidInput, "invalid equipment_type_id filter")
		}
		filter.EquipmentTypeID = &id
	}
	if q.StartDate != "" {
		t, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return nil, rejectf(RejectInvalidInput, "invalid start_date, expected YYYY-MM-DD")
		}
		filter.From = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return nil, rejectf(RejectInvalidInput, "invalid end_date, expected YYYY-MM-DD")
		}
		filter.To = &t
	}

	transfers, err := s.transfers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TransferResponse, 0, len(transfers))
	for i := range transfers {
		resp = append(resp, *transferToResponse(&transfers[i]))
	}
	return resp, nil
}

func transferToResponse(t *model.Transfer) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:              t.ID.String(),
		FromBaseID:      t.FromBaseID.String(),
		ToBaseID:        t.ToBaseID.String(),
		EquipmentTypeID: t.EquipmentTypeID.String(),
		Quantity:        t.Quantity,
		Status:          t.Status,
		Notes:           t.Notes,
		CreatedBy:       t.CreatedBy.String(),
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.FromBase != nil {
		resp.FromBaseName = t.FromBase.Name
	}
	if t.ToBase != nil {
		resp.ToBaseName = t.ToBase.Name
	}
	if t.EquipmentType != nil {
		resp.EquipmentName = t.EquipmentType.Name
	}
	return resp
}
