package service

import (
	"context"
	"errors"
	"time"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	// RecordPurchase credits (base, equipment type) by the purchased
	// quantity, atomically with the insertion of the purchase record.
	RecordPurchase(ctx context.Context, actor Actor, req dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error)
	ListPurchases(ctx context.Context, actor Actor, q dto.MovementQuery) ([]dto.PurchaseResponse, error)
}

type purchaseService struct {
	purchases repository.PurchaseRepository
	balances  repository.BalanceRepository
	bases     repository.BaseRepository
	equipment repository.EquipmentTypeRepository
	audit     AuditRecorder
}

func NewPurchaseService(
	purchases repository.PurchaseRepository,
	balances repository.BalanceRepository,
	bases repository.BaseRepository,
	equipment repository.EquipmentTypeRepository,
	audit AuditRecorder,
) PurchaseService {
	return &purchaseService{
		purchases: purchases,
		balances:  balances,
		bases:     bases,
		equipment: equipment,
		audit:     audit,
	}
}

func (s *purchaseService) RecordPurchase(ctx context.Context, actor Actor, req dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error) {
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

	if !actor.CanOperate(baseID) {
		return nil, rejectf(RejectAccessDenied, "access denied to purchase for this base")
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

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse(dateLayout, req.PurchaseDate)
		if err != nil {
			return nil, rejectf(RejectInvalidInput, "invalid purchase_date, expected YYYY-MM-DD")
		}
	}

	purchase := &model.Purchase{
		BaseID:          baseID,
		EquipmentTypeID: equipmentTypeID,
		Quantity:        req.Quantity,
		Supplier:        req.Supplier,
		PurchaseDate:    purchaseDate,
		Notes:           req.Notes,
		CreatedBy:       actor.ID,
	}
	if req.UnitCost != nil {
		total := req.UnitCost.Mul(decimal.NewFromInt(int64(req.Quantity)))
		purchase.UnitCost = req.UnitCost
		purchase.TotalCost = &total
	}

	// Purchase record and balance credit commit or roll back as one unit.
	txErr := runTx(ctx, s.balances.DB(), func(tx *gorm.DB) error {
		if err := s.purchases.CreateTx(tx, purchase); err != nil {
			return err
		}
		return s.balances.AddTx(tx, baseID, equipmentTypeID, req.Quantity)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.audit.Record(ctx, AuditEvent{
		Actor:      actor,
		Action:     ActionPurchase,
		EntityType: "PURCHASE",
		EntityID:   purchase.ID,
		NewValues:  purchase,
	})

	purchase.Base = base
	purchase.EquipmentType = equipment
	return purchaseToResponse(purchase), nil
}

func (s *purchaseService) ListPurchases(ctx context.Context, actor Actor, q dto.MovementQuery) ([]dto.PurchaseResponse, error) {
	filter, err := movementFilterFor(actor, q)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchases.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		resp = append(resp, *purchaseToResponse(&purchases[i]))
	}
	return resp, nil
}

func purchaseToResponse(p *model.Purchase) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:              p.ID.String(),
		BaseID:          p.BaseID.String(),
		EquipmentTypeID: p.EquipmentTypeID.String(),
		Quantity:        p.Quantity,
		Supplier:        p.Supplier,
		UnitCost:        p.UnitCost,
		TotalCost:       p.TotalCost,
		PurchaseDate:    p.PurchaseDate.Format(dateLayout),
		Notes:           p.Notes,
		CreatedBy:       p.CreatedBy.String(),
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.Base != nil {
		resp.BaseName = p.Base.Name
	}
	if p.EquipmentType != nil {
		resp.EquipmentName = p.EquipmentType.Name
	}
	return resp
}
