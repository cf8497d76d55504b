package service

import (
	"context"
	"errors"
	"time"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/repository"

	"github.com/google/uuid"
)

type InventoryService interface {
	// GetBalance reads the current balance for one (base, equipment type)
	// pair. A pair with no balance row reads as zero.
	GetBalance(ctx context.Context, actor Actor, baseID, equipmentTypeID string) (*dto.BalanceResponse, error)
	ListBalances(ctx context.Context, actor Actor, q dto.MovementQuery) ([]dto.BalanceResponse, error)
}

type inventoryService struct {
	balances repository.BalanceRepository
}

func NewInventoryService(balances repository.BalanceRepository) InventoryService {
	return &inventoryService{balances: balances}
}

func (s *inventoryService) GetBalance(ctx context.Context, actor Actor, baseID, equipmentTypeID string) (*dto.BalanceResponse, error) {
	bID, err := uuid.Parse(baseID)
	if err != nil {
		return nil, rejectf(RejectInvalidInput, "invalid base_id")
	}
	eID, err := uuid.Parse(equipmentTypeID)
	if err != nil {
		return nil, rejectf(RejectInvalidInput, "invalid equipment_type_id")
	}
	if !actor.CanOperate(bID) {
		return nil, rejectf(RejectAccessDenied, "access denied to this base's inventory")
	}

	balance, err := s.balances.Get(ctx, bID, eID)
	if errors.Is(err, repository.ErrNotFound) {
		// No movement yet for this pair: zero, not an error.
		return &dto.BalanceResponse{
			BaseID:          bID.String(),
			EquipmentTypeID: eID.String(),
			CurrentBalance:  0,
		}, nil
	} else if err != nil {
		return nil, err
	}
	return balanceToResponse(balance), nil
}

func (s *inventoryService) ListBalances(ctx context.Context, actor Actor, q dto.MovementQuery) ([]dto.BalanceResponse, error) {
	var filter repository.BalanceFilter

	if !actor.IsAdmin() {
		if actor.BaseID == nil {
			return nil, rejectf(RejectAccessDenied, "account has no assigned base")
		}
		filter.BaseID = actor.BaseID
	} else if q.BaseID != "" {
		id, err := uuid.Parse(q.BaseID)
		if err != nil {
			return nil, rejectf(RejectInvalidInput, "invalid base_id filter")
		}
		filter.BaseID = &id
	}
	if q.EquipmentTypeID != "" {
		id, err := uuid.Parse(q.EquipmentTypeID)
		if err != nil {
			return nil, rejectf(RejectInvalidInput, "invalid equipment_type_id filter")
		}
		filter.EquipmentTypeID = &id
	}

	balances, err := s.balances.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BalanceResponse, 0, len(balances))
	for i := range balances {
		resp = append(resp, *balanceToResponse(&balances[i]))
	}
	return resp, nil
}

func balanceToResponse(b *model.Balance) *dto.BalanceResponse {
	resp := &dto.BalanceResponse{
		BaseID:          b.BaseID.String(),
		EquipmentTypeID: b.EquipmentTypeID.String(),
		CurrentBalance:  b.CurrentBalance,
		LastUpdated:     b.LastUpdated.UTC().Format(time.RFC3339),
	}
	if b.Base != nil {
		resp.BaseName = b.Base.Name
	}
	if b.EquipmentType != nil {
		resp.EquipmentName = b.EquipmentType.Name
	}
	return resp
}
