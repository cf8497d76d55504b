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

// CatalogService manages the reference data the ledger moves against: bases
// and the equipment type catalog. Mutations are admin only; reads are open to
// every authenticated role (listings back the UI's filter dropdowns).
type CatalogService interface {
	CreateBase(ctx context.Context, actor Actor, req dto.CreateBaseRequest) (*dto.BaseResponse, error)
	UpdateBase(ctx context.Context, actor Actor, baseID string, req dto.UpdateBaseRequest) (*dto.BaseResponse, error)
	DeleteBase(ctx context.Context, actor Actor, baseID string) error
	ListBases(ctx context.Context) ([]dto.BaseResponse, error)

	CreateEquipmentType(ctx context.Context, actor Actor, req dto.CreateEquipmentTypeRequest) (*dto.EquipmentTypeResponse, error)
	ListEquipmentTypes(ctx context.Context) ([]dto.EquipmentTypeResponse, error)
}

type catalogService struct {
	bases     repository.BaseRepository
	equipment repository.EquipmentTypeRepository
	balances  repository.BalanceRepository
	audit     AuditRecorder
}

func NewCatalogService(
	bases repository.BaseRepository,
	equipment repository.EquipmentTypeRepository,
	balances repository.BalanceRepository,
	audit AuditRecorder,
) CatalogService {
	return &catalogService{bases: bases, equipment: equipment, balances: balances, audit: audit}
}

func (s *catalogService) CreateBase(ctx context.Context, actor Actor, req dto.CreateBaseRequest) (*dto.BaseResponse, error) {
	if !actor.IsAdmin() {
		return nil, rejectf(RejectAccessDenied, "only admins may create bases")
	}
	base := &model.Base{Name: req.Name, Location: req.Location}
	if err := s.bases.Create(ctx, base); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, rejectf(RejectInvalidInput, "a base with this name already exists")
		}
		return nil, err
	}
	s.audit.Record(ctx, AuditEvent{
		Actor: actor, Action: ActionCreate, EntityType: "BASE", EntityID: base.ID, NewValues: base,
	})
	return baseToResponse(base), nil
}

func (s *catalogService) UpdateBase(ctx context.Context, actor Actor, baseID string, req dto.UpdateBaseRequest) (*dto.BaseResponse, error) {
	if !actor.IsAdmin() {
		return nil, rejectf(RejectAccessDenied, "only admins may update bases")
	}
	id, err := uuid.Parse(baseID)
	if err != nil {
		return nil, rejectf(RejectInvalidInput, "invalid base id")
	}
	base, err := s.bases.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, rejectf(RejectNotFound, "base not found")
	} else if err != nil {
		return nil, err
	}
	old := *base
	if req.Name != "" {
		base.Name = req.Name
	}
	if req.Location != "" {
		base.Location = req.Location
	}
	if err := s.bases.Update(ctx, base); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, rejectf(RejectInvalidInput, "a base with this name already exists")
		}
		return nil, err
	}
	s.audit.Record(ctx, AuditEvent{
		Actor: actor, Action: ActionUpdate, EntityType: "BASE", EntityID: base.ID,
		OldValues: old, NewValues: base,
	})
	return baseToResponse(base), nil
}

func (s *catalogService) DeleteBase(ctx context.Context, actor Actor, baseID string) error {
	if !actor.IsAdmin() {
		return rejectf(RejectAccessDenied, "only admins may delete bases")
	}
	id, err := uuid.Parse(baseID)
	if err != nil {
		return rejectf(RejectInvalidInput, "invalid base id")
	}
	// A base with inventory on the books cannot be removed; the balances
	// would dangle and totals would silently shrink.
	balances, err := s.balances.List(ctx, repository.BalanceFilter{BaseID: &id})
	if err != nil {
		return err
	}
	for _, b := range balances {
		if b.CurrentBalance > 0 {
			return rejectf(RejectInvalidState, "base still holds inventory")
		}
	}
	if err := s.bases.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return rejectf(RejectNotFound, "base not found")
		}
		return err
	}
	s.audit.Record(ctx, AuditEvent{
		Actor: actor, Action: ActionDelete, EntityType: "BASE", EntityID: id,
	})
	return nil
}

func (s *catalogService) ListBases(ctx context.Context) ([]dto.BaseResponse, error) {
	bases, err := s.bases.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BaseResponse, 0, len(bases))
	for i := range bases {
		resp = append(resp, *baseToResponse(&bases[i]))
	}
	return resp, nil
}

func (s *catalogService) CreateEquipmentType(ctx context.Context, actor Actor, req dto.CreateEquipmentTypeRequest) (*dto.EquipmentTypeResponse, error) {
	if !actor.IsAdmin() {
		return nil, rejectf(RejectAccessDenied, "only admins may create equipment types")
	}
	if req.LowStockThreshold < 0 {
		return nil, rejectf(RejectInvalidInput, "low_stock_threshold must not be negative")
	}
	equipment := &model.EquipmentType{
		Name:              req.Name,
		Category:          req.Category,
		Unit:              req.Unit,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := s.equipment.Create(ctx, equipment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, rejectf(RejectInvalidInput, "an equipment type with this name already exists")
		}
		return nil, err
	}
	s.audit.Record(ctx, AuditEvent{
		Actor: actor, Action: ActionCreate, EntityType: "EQUIPMENT_TYPE", EntityID: equipment.ID, NewValues: equipment,
	})
	return equipmentToResponse(equipment), nil
}

func (s *catalogService) ListEquipmentTypes(ctx context.Context) ([]dto.EquipmentTypeResponse, error) {
	types, err := s.equipment.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EquipmentTypeResponse, 0, len(types))
	for i := range types {
		resp = append(resp, *equipmentToResponse(&types[i]))
	}
	return resp, nil
}

func baseToResponse(b *model.Base) *dto.BaseResponse {
	return &dto.BaseResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Location:  b.Location,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func equipmentToResponse(e *model.EquipmentType) *dto.EquipmentTypeResponse {
	return &dto.EquipmentTypeResponse{
		ID:                e.ID.String(),
		Name:              e.Name,
		Category:          e.Category,
		Unit:              e.Unit,
		LowStockThreshold: e.LowStockThreshold,
	}
}
