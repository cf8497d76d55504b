package service_test

import (
	"context"
	"testing"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture(t *testing.T) (service.CatalogService, *stubBaseRepo, *stubBalanceRepo) {
	t.Helper()
	bases := newStubBaseRepo()
	equipment := newStubEquipmentRepo()
	balances := newStubBalanceRepo()
	svc := service.NewCatalogService(bases, equipment, balances, &recordingAudit{})
	return svc, bases, balances
}

func TestCreateBaseAdminOnly(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	resp, err := svc.CreateBase(ctx, adminActor(), dto.CreateBaseRequest{Name: "Delta Outpost", Location: "Germany"})
	require.NoError(t, err)
	assert.Equal(t, "Delta Outpost", resp.Name)

	actor := baseActor(model.RoleCommander, uuid.New())
	_, err = svc.CreateBase(ctx, actor, dto.CreateBaseRequest{Name: "Rogue Base"})
	assert.True(t, service.IsKind(err, service.RejectAccessDenied))
}

func TestDeleteBaseBlockedWhileHoldingInventory(t *testing.T) {
	svc, bases, balances := newCatalogFixture(t)
	ctx := context.Background()
	baseID := bases.add("Alpha Base")
	balances.set(baseID, uuid.New(), 12)

	err := svc.DeleteBase(ctx, adminActor(), baseID.String())
	assert.True(t, service.IsKind(err, service.RejectInvalidState))

	// Zeroed balances no longer block deletion.
	for key := range balances.balances {
		balances.balances[key].CurrentBalance = 0
	}
	require.NoError(t, svc.DeleteBase(ctx, adminActor(), baseID.String()))
}

func TestCreateEquipmentTypeValidatesThreshold(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	resp, err := svc.CreateEquipmentType(context.Background(), adminActor(), dto.CreateEquipmentTypeRequest{
		Name: "5.56mm Ammo", Category: "Ammunition", Unit: "rounds", LowStockThreshold: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, 10000, resp.LowStockThreshold)
}
