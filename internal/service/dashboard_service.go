package service

import (
	"context"
	"sort"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/repository"

	"github.com/google/uuid"
)

type DashboardService interface {
	// Summary aggregates per-equipment movement totals for the filtered
	// period and scope. Opening balances are back-solved:
	//
	//   opening = closing − (purchases + transferIn − transferOut) + assigned + expended
	//
	// where closing is the live balance snapshot. The derivation holds
	// because every movement row corresponds to exactly one applied balance
	// delta. Derived values are reporting output only and are never written
	// back to the balance store.
	Summary(ctx context.Context, actor Actor, q dto.MovementQuery) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	balances    repository.BalanceRepository
	purchases   repository.PurchaseRepository
	transfers   repository.TransferRepository
	assignments repository.AssignmentRepository
	equipment   repository.EquipmentTypeRepository
}

func NewDashboardService(
	balances repository.BalanceRepository,
	purchases repository.PurchaseRepository,
	transfers repository.TransferRepository,
	assignments repository.AssignmentRepository,
	equipment repository.EquipmentTypeRepository,
) DashboardService {
	return &dashboardService{
		balances:    balances,
		purchases:   purchases,
		transfers:   transfers,
		assignments: assignments,
		equipment:   equipment,
	}
}

func (s *dashboardService) Summary(ctx context.Context, actor Actor, q dto.MovementQuery) (*dto.DashboardResponse, error) {
	filter, err := movementFilterFor(actor, q)
	if err != nil {
		return nil, err
	}
	balanceFilter := repository.BalanceFilter{
		BaseID:          filter.BaseID,
		EquipmentTypeID: filter.EquipmentTypeID,
	}

	closingRows, err := s.balances.SumByEquipment(ctx, balanceFilter)
	if err != nil {
		return nil, err
	}
	purchaseRows, err := s.purchases.SumByEquipment(ctx, filter)
	if err != nil {
		return nil, err
	}
	inRows, err := s.transfers.SumIncoming(ctx, filter)
	if err != nil {
		return nil, err
	}
	outRows, err := s.transfers.SumOutgoing(ctx, filter)
	if err != nil {
		return nil, err
	}
	assignedRows, err := s.assignments.SumByKind(ctx, model.AssignmentAssigned, filter)
	if err != nil {
		return nil, err
	}
	expendedRows, err := s.assignments.SumByKind(ctx, model.AssignmentExpended, filter)
	if err != nil {
		return nil, err
	}

	closing := repository.TotalsToMap(closingRows)
	purchases := repository.TotalsToMap(purchaseRows)
	transferIn := repository.TotalsToMap(inRows)
	transferOut := repository.TotalsToMap(outRows)
	assigned := repository.TotalsToMap(assignedRows)
	expended := repository.TotalsToMap(expendedRows)

	ids := make(map[uuid.UUID]struct{})
	for _, m := range []map[uuid.UUID]int64{closing, purchases, transferIn, transferOut, assigned, expended} {
		for id := range m {
			ids[id] = struct{}{}
		}
	}

	idList := make([]uuid.UUID, 0, len(ids))
	for id := range ids {
		idList = append(idList, id)
	}
	sort.Slice(idList, func(i, j int) bool { return idList[i].String() < idList[j].String() })
	types, err := s.equipment.ListByIDs(ctx, idList)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}

	resp := &dto.DashboardResponse{Inventory: make([]dto.EquipmentMetrics, 0, len(idList))}
	for _, id := range idList {
		net := purchases[id] + transferIn[id] - transferOut[id]
		row := dto.EquipmentMetrics{
			EquipmentTypeID: id.String(),
			Name:            names[id],
			ClosingBalance:  closing[id],
			NetMovement:     net,
			Purchases:       purchases[id],
			TransferIn:      transferIn[id],
			TransferOut:     transferOut[id],
			Assigned:        assigned[id],
			Expended:        expended[id],
		}
		row.OpeningBalance = row.ClosingBalance - net + row.Assigned + row.Expended

		resp.Inventory = append(resp.Inventory, row)
		resp.Summary.ClosingBalance += row.ClosingBalance
		resp.Summary.OpeningBalance += row.OpeningBalance
		resp.Summary.NetMovement += net
		resp.Summary.Assigned += row.Assigned
		resp.Summary.Expended += row.Expended
		resp.NetMovementBreakdown.Purchases += row.Purchases
		resp.NetMovementBreakdown.TransferIn += row.TransferIn
		resp.NetMovementBreakdown.TransferOut += row.TransferOut
	}
	return resp, nil
}
