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

type transferFixture struct {
	svc       service.TransferService
	balances  *stubBalanceRepo
	transfers *stubTransferRepo
	audit     *recordingAudit
	alphaID   uuid.UUID
	bravoID   uuid.UUID
	rifleID   uuid.UUID
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()
	balances := newStubBalanceRepo()
	transfers := newStubTransferRepo()
	bases := newStubBaseRepo()
	equipment := newStubEquipmentRepo()
	audit := &recordingAudit{}

	f := &transferFixture{
		svc:       service.NewTransferService(transfers, balances, bases, equipment, audit),
		balances:  balances,
		transfers: transfers,
		audit:     audit,
		alphaID:   bases.add("Alpha Base"),
		bravoID:   bases.add("Bravo Base"),
		rifleID:   equipment.add("M4 Carbine", 0),
	}
	return f
}

func (f *transferFixture) initiate(t *testing.T, actor service.Actor, qty int) *dto.TransferResponse {
	t.Helper()
	resp, err := f.svc.InitiateTransfer(context.Background(), actor, dto.InitiateTransferRequest{
		FromBaseID:      f.alphaID.String(),
		ToBaseID:        f.bravoID.String(),
		EquipmentTypeID: f.rifleID.String(),
		Quantity:        qty,
	})
	require.NoError(t, err)
	return resp
}

// totalOnHand sums both bases' balances plus nothing else; quantity in flight
// on a pending transfer is deliberately absent from both.
func (f *transferFixture) totalOnHand() int {
	return f.balances.current(f.alphaID, f.rifleID) + f.balances.current(f.bravoID, f.rifleID)
}

func TestInitiateTransferDebitsSourceImmediately(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 100)

	resp := f.initiate(t, adminActor(), 30)

	assert.Equal(t, model.TransferPending, resp.Status)
	assert.Equal(t, 70, f.balances.current(f.alphaID, f.rifleID))
	assert.Equal(t, 0, f.balances.current(f.bravoID, f.rifleID),
		"destination must not be credited before completion")
	assert.Equal(t, []string{service.ActionTransferInit}, f.audit.actions())
}

func TestInitiateTransferInsufficientInventory(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 10)

	_, err := f.svc.InitiateTransfer(context.Background(), adminActor(), dto.InitiateTransferRequest{
		FromBaseID:      f.alphaID.String(),
		ToBaseID:        f.bravoID.String(),
		EquipmentTypeID: f.rifleID.String(),
		Quantity:        11,
	})
	assert.True(t, service.IsKind(err, service.RejectInsufficientInventory))
	assert.Equal(t, 10, f.balances.current(f.alphaID, f.rifleID))
	assert.Empty(t, f.audit.actions())
}

func TestInitiateTransferSameBaseRejected(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 10)

	_, err := f.svc.InitiateTransfer(context.Background(), adminActor(), dto.InitiateTransferRequest{
		FromBaseID:      f.alphaID.String(),
		ToBaseID:        f.alphaID.String(),
		EquipmentTypeID: f.rifleID.String(),
		Quantity:        5,
	})
	assert.True(t, service.IsKind(err, service.RejectInvalidInput))
}

func TestInitiateTransferRequiresSourceAuthority(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 10)

	// Destination-base actor cannot pull inventory out of the source.
	actor := baseActor(model.RoleCommander, f.bravoID)
	_, err := f.svc.InitiateTransfer(context.Background(), actor, dto.InitiateTransferRequest{
		FromBaseID:      f.alphaID.String(),
		ToBaseID:        f.bravoID.String(),
		EquipmentTypeID: f.rifleID.String(),
		Quantity:        5,
	})
	assert.True(t, service.IsKind(err, service.RejectAccessDenied))
	assert.Equal(t, 10, f.balances.current(f.alphaID, f.rifleID))
}

func TestCompleteTransferCreditsDestination(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 100)
	pending := f.initiate(t, adminActor(), 30)

	receiver := baseActor(model.RoleLogistics, f.bravoID)
	resp, err := f.svc.FinalizeTransfer(context.Background(), receiver, pending.ID, service.DecisionComplete)
	require.NoError(t, err)

	assert.Equal(t, model.TransferCompleted, resp.Status)
	assert.Equal(t, 70, f.balances.current(f.alphaID, f.rifleID))
	assert.Equal(t, 30, f.balances.current(f.bravoID, f.rifleID))
	assert.Equal(t, 100, f.totalOnHand(), "completion must conserve total inventory")
}

func TestCancelTransferRefundsSource(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 100)
	pending := f.initiate(t, adminActor(), 30)

	sender := baseActor(model.RoleCommander, f.alphaID)
	resp, err := f.svc.FinalizeTransfer(context.Background(), sender, pending.ID, service.DecisionCancel)
	require.NoError(t, err)

	assert.Equal(t, model.TransferCancelled, resp.Status)
	assert.Equal(t, 100, f.balances.current(f.alphaID, f.rifleID), "cancellation must refund the reservation")
	assert.Equal(t, 0, f.balances.current(f.bravoID, f.rifleID))
}

func TestFinalizeTransferTerminalStatesAreClosed(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 100)
	admin := adminActor()
	pending := f.initiate(t, admin, 30)

	_, err := f.svc.FinalizeTransfer(context.Background(), admin, pending.ID, service.DecisionComplete)
	require.NoError(t, err)

	// Neither completing again nor cancelling a completed transfer may run.
	_, err = f.svc.FinalizeTransfer(context.Background(), admin, pending.ID, service.DecisionComplete)
	assert.True(t, service.IsKind(err, service.RejectInvalidState))
	_, err = f.svc.FinalizeTransfer(context.Background(), admin, pending.ID, service.DecisionCancel)
	assert.True(t, service.IsKind(err, service.RejectInvalidState))

	// No double credit.
	assert.Equal(t, 30, f.balances.current(f.bravoID, f.rifleID))
	assert.Equal(t, 100, f.totalOnHand())
}

func TestCompleteRequiresDestinationAuthority(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 100)
	pending := f.initiate(t, adminActor(), 30)

	// The sender may cancel but not complete.
	sender := baseActor(model.RoleCommander, f.alphaID)
	_, err := f.svc.FinalizeTransfer(context.Background(), sender, pending.ID, service.DecisionComplete)
	assert.True(t, service.IsKind(err, service.RejectAccessDenied))

	// The receiver may complete but not cancel.
	receiver := baseActor(model.RoleCommander, f.bravoID)
	_, err = f.svc.FinalizeTransfer(context.Background(), receiver, pending.ID, service.DecisionCancel)
	assert.True(t, service.IsKind(err, service.RejectAccessDenied))

	// Denials must not have moved inventory: still pending, still debited.
	assert.Equal(t, 70, f.balances.current(f.alphaID, f.rifleID))
	assert.Equal(t, 0, f.balances.current(f.bravoID, f.rifleID))
}

func TestFinalizeUnknownTransfer(t *testing.T) {
	f := newTransferFixture(t)

	_, err := f.svc.FinalizeTransfer(context.Background(), adminActor(), uuid.NewString(), service.DecisionComplete)
	assert.True(t, service.IsKind(err, service.RejectNotFound))
}

func TestFinalizeRejectsUnknownDecision(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 100)
	pending := f.initiate(t, adminActor(), 10)

	_, err := f.svc.FinalizeTransfer(context.Background(), adminActor(), pending.ID, "pending")
	assert.True(t, service.IsKind(err, service.RejectInvalidInput))
}

func TestGetTransferVisibilityScopedToParties(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 100)
	pending := f.initiate(t, adminActor(), 10)

	// Both parties see it.
	_, err := f.svc.GetTransfer(context.Background(), baseActor(model.RoleCommander, f.alphaID), pending.ID)
	assert.NoError(t, err)
	_, err = f.svc.GetTransfer(context.Background(), baseActor(model.RoleLogistics, f.bravoID), pending.ID)
	assert.NoError(t, err)

	// A third base does not.
	_, err = f.svc.GetTransfer(context.Background(), baseActor(model.RoleCommander, uuid.New()), pending.ID)
	assert.True(t, service.IsKind(err, service.RejectAccessDenied))
}

func TestListTransfersIncludesBothDirections(t *testing.T) {
	f := newTransferFixture(t)
	f.balances.set(f.alphaID, f.rifleID, 100)
	f.balances.set(f.bravoID, f.rifleID, 50)
	admin := adminActor()

	f.initiate(t, admin, 10) // alpha → bravo
	_, err := f.svc.InitiateTransfer(context.Background(), admin, dto.InitiateTransferRequest{
		FromBaseID:      f.bravoID.String(),
		ToBaseID:        f.alphaID.String(),
		EquipmentTypeID: f.rifleID.String(),
		Quantity:        5,
	})
	require.NoError(t, err)

	rows, err := f.svc.ListTransfers(context.Background(), baseActor(model.RoleCommander, f.alphaID), dto.MovementQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 2, "a base sees transfers it sends and receives")
}
