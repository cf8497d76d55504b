package service_test

// In-memory repository stubs. The balance stub applies deltas atomically
// under a mutex so concurrency tests observe the same all-or-nothing outcome
// the real FOR UPDATE row lock provides.

import (
	"context"
	"sync"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/repository"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Balances ──────────────────────────────────────────────────────────────────

type balanceKey struct {
	base      uuid.UUID
	equipment uuid.UUID
}

type stubBalanceRepo struct {
	mu       sync.Mutex
	balances map[balanceKey]*model.Balance
}

func newStubBalanceRepo() *stubBalanceRepo {
	return &stubBalanceRepo{balances: make(map[balanceKey]*model.Balance)}
}

func (r *stubBalanceRepo) set(base, equipment uuid.UUID, qty int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[balanceKey{base, equipment}] = &model.Balance{
		ID: uuid.New(), BaseID: base, EquipmentTypeID: equipment, CurrentBalance: qty,
	}
}

func (r *stubBalanceRepo) current(base, equipment uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.balances[balanceKey{base, equipment}]; ok {
		return b.CurrentBalance
	}
	return 0
}

func (r *stubBalanceRepo) Get(_ context.Context, base, equipment uuid.UUID) (*model.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey{base, equipment}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBalanceRepo) GetForUpdateTx(_ *gorm.DB, base, equipment uuid.UUID) (*model.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey{base, equipment}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBalanceRepo) AddTx(_ *gorm.DB, base, equipment uuid.UUID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := balanceKey{base, equipment}
	if b, ok := r.balances[key]; ok {
		b.CurrentBalance += qty
		return nil
	}
	r.balances[key] = &model.Balance{
		ID: uuid.New(), BaseID: base, EquipmentTypeID: equipment, CurrentBalance: qty,
	}
	return nil
}

// ApplyDeltaTx check-and-applies atomically, like the guarded UPDATE it
// stands in for.
func (r *stubBalanceRepo) ApplyDeltaTx(_ *gorm.DB, base, equipment uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey{base, equipment}]
	if !ok || b.CurrentBalance+delta < 0 {
		return repository.ErrNegativeBalance
	}
	b.CurrentBalance += delta
	return nil
}

func (r *stubBalanceRepo) List(_ context.Context, filter repository.BalanceFilter) ([]model.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Balance
	for _, b := range r.balances {
		if filter.BaseID != nil && b.BaseID != *filter.BaseID {
			continue
		}
		if filter.EquipmentTypeID != nil && b.EquipmentTypeID != *filter.EquipmentTypeID {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBalanceRepo) SumByEquipment(_ context.Context, filter repository.BalanceFilter) ([]repository.EquipmentTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := make(map[uuid.UUID]int64)
	for _, b := range r.balances {
		if filter.BaseID != nil && b.BaseID != *filter.BaseID {
			continue
		}
		if filter.EquipmentTypeID != nil && b.EquipmentTypeID != *filter.EquipmentTypeID {
			continue
		}
		totals[b.EquipmentTypeID] += int64(b.CurrentBalance)
	}
	return totalsToRows(totals), nil
}

func (r *stubBalanceRepo) DB() *gorm.DB { return nil }

var _ repository.BalanceRepository = (*stubBalanceRepo)(nil)

// ── Purchases ─────────────────────────────────────────────────────────────────

type stubPurchaseRepo struct {
	mu        sync.Mutex
	purchases []model.Purchase
}

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.purchases = append(r.purchases, *p)
	return nil
}

func (r *stubPurchaseRepo) List(_ context.Context, filter repository.MovementFilter) ([]model.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Purchase
	for _, p := range r.purchases {
		if filter.BaseID != nil && p.BaseID != *filter.BaseID {
			continue
		}
		if filter.EquipmentTypeID != nil && p.EquipmentTypeID != *filter.EquipmentTypeID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPurchaseRepo) SumByEquipment(_ context.Context, filter repository.MovementFilter) ([]repository.EquipmentTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := make(map[uuid.UUID]int64)
	for _, p := range r.purchases {
		if filter.BaseID != nil && p.BaseID != *filter.BaseID {
			continue
		}
		totals[p.EquipmentTypeID] += int64(p.Quantity)
	}
	return totalsToRows(totals), nil
}

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── Transfers ─────────────────────────────────────────────────────────────────

type stubTransferRepo struct {
	mu        sync.Mutex
	transfers map[uuid.UUID]*model.Transfer
}

func newStubTransferRepo() *stubTransferRepo {
	return &stubTransferRepo{transfers: make(map[uuid.UUID]*model.Transfer)}
}

func (r *stubTransferRepo) CreateTx(_ *gorm.DB, t *model.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	r.transfers[t.ID] = &cp
	return nil
}

func (r *stubTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transfers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTransferRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transfers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTransferRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transfers[id]
	if !ok || t.Status != model.TransferPending {
		return repository.ErrNotFound
	}
	t.Status = status
	return nil
}

func (r *stubTransferRepo) List(_ context.Context, filter repository.TransferFilter) ([]model.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Transfer
	for _, t := range r.transfers {
		if filter.InvolvedBaseID != nil &&
			t.FromBaseID != *filter.InvolvedBaseID && t.ToBaseID != *filter.InvolvedBaseID {
			continue
		}
		if filter.EquipmentTypeID != nil && t.EquipmentTypeID != *filter.EquipmentTypeID {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTransferRepo) SumOutgoing(_ context.Context, filter repository.MovementFilter) ([]repository.EquipmentTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := make(map[uuid.UUID]int64)
	for _, t := range r.transfers {
		if t.Status == model.TransferCancelled {
			continue
		}
		if filter.BaseID != nil && t.FromBaseID != *filter.BaseID {
			continue
		}
		totals[t.EquipmentTypeID] += int64(t.Quantity)
	}
	return totalsToRows(totals), nil
}

func (r *stubTransferRepo) SumIncoming(_ context.Context, filter repository.MovementFilter) ([]repository.EquipmentTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := make(map[uuid.UUID]int64)
	for _, t := range r.transfers {
		if t.Status != model.TransferCompleted {
			continue
		}
		if filter.BaseID != nil && t.ToBaseID != *filter.BaseID {
			continue
		}
		totals[t.EquipmentTypeID] += int64(t.Quantity)
	}
	return totalsToRows(totals), nil
}

func (r *stubTransferRepo) DB() *gorm.DB { return nil }

var _ repository.TransferRepository = (*stubTransferRepo)(nil)

// ── Assignments ───────────────────────────────────────────────────────────────

type stubAssignmentRepo struct {
	mu          sync.Mutex
	assignments []model.Assignment
}

func (r *stubAssignmentRepo) CreateTx(_ *gorm.DB, a *model.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.assignments = append(r.assignments, *a)
	return nil
}

func (r *stubAssignmentRepo) List(_ context.Context, filter repository.MovementFilter) ([]model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Assignment
	for _, a := range r.assignments {
		if filter.BaseID != nil && a.BaseID != *filter.BaseID {
			continue
		}
		if filter.EquipmentTypeID != nil && a.EquipmentTypeID != *filter.EquipmentTypeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *stubAssignmentRepo) SumByKind(_ context.Context, kind string, filter repository.MovementFilter) ([]repository.EquipmentTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := make(map[uuid.UUID]int64)
	for _, a := range r.assignments {
		if a.Kind != kind {
			continue
		}
		if filter.BaseID != nil && a.BaseID != *filter.BaseID {
			continue
		}
		totals[a.EquipmentTypeID] += int64(a.Quantity)
	}
	return totalsToRows(totals), nil
}

var _ repository.AssignmentRepository = (*stubAssignmentRepo)(nil)

// ── Bases / Equipment ─────────────────────────────────────────────────────────

type stubBaseRepo struct {
	bases map[uuid.UUID]*model.Base
}

func newStubBaseRepo() *stubBaseRepo {
	return &stubBaseRepo{bases: make(map[uuid.UUID]*model.Base)}
}

func (r *stubBaseRepo) add(name string) uuid.UUID {
	b := &model.Base{ID: uuid.New(), Name: name}
	r.bases[b.ID] = b
	return b.ID
}

func (r *stubBaseRepo) Create(_ context.Context, b *model.Base) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.bases[b.ID] = b
	return nil
}

func (r *stubBaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Base, error) {
	b, ok := r.bases[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (r *stubBaseRepo) List(_ context.Context) ([]model.Base, error) {
	var out []model.Base
	for _, b := range r.bases {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBaseRepo) Update(_ context.Context, b *model.Base) error {
	r.bases[b.ID] = b
	return nil
}

func (r *stubBaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.bases[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.bases, id)
	return nil
}

var _ repository.BaseRepository = (*stubBaseRepo)(nil)

type stubEquipmentRepo struct {
	types map[uuid.UUID]*model.EquipmentType
}

func newStubEquipmentRepo() *stubEquipmentRepo {
	return &stubEquipmentRepo{types: make(map[uuid.UUID]*model.EquipmentType)}
}

func (r *stubEquipmentRepo) add(name string, threshold int) uuid.UUID {
	e := &model.EquipmentType{ID: uuid.New(), Name: name, Unit: "units", LowStockThreshold: threshold}
	r.types[e.ID] = e
	return e.ID
}

func (r *stubEquipmentRepo) Create(_ context.Context, e *model.EquipmentType) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.types[e.ID] = e
	return nil
}

func (r *stubEquipmentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.EquipmentType, error) {
	e, ok := r.types[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

func (r *stubEquipmentRepo) List(_ context.Context) ([]model.EquipmentType, error) {
	var out []model.EquipmentType
	for _, e := range r.types {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEquipmentRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]model.EquipmentType, error) {
	var out []model.EquipmentType
	for _, id := range ids {
		if e, ok := r.types[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

var _ repository.EquipmentTypeRepository = (*stubEquipmentRepo)(nil)

// ── Users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	byID       map[uuid.UUID]*model.User
	byUsername map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:       make(map[uuid.UUID]*model.User),
		byUsername: make(map[string]*model.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if _, exists := r.byUsername[u.Username]; exists {
		return repository.ErrDuplicate
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.byUsername[username]
	if !ok || !u.Active {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Audit / alert sinks ───────────────────────────────────────────────────────

type recordingAudit struct {
	mu     sync.Mutex
	events []service.AuditEvent
}

func (a *recordingAudit) Record(_ context.Context, ev service.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

var _ service.AuditRecorder = (*recordingAudit)(nil)

type recordingAlerts struct {
	mu     sync.Mutex
	alerts []service.LowStockAlert
}

func (a *recordingAlerts) LowStock(_ context.Context, alert service.LowStockAlert) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, alert)
}

var _ service.AlertNotifier = (*recordingAlerts)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func totalsToRows(totals map[uuid.UUID]int64) []repository.EquipmentTotal {
	rows := make([]repository.EquipmentTotal, 0, len(totals))
	for id, total := range totals {
		rows = append(rows, repository.EquipmentTotal{EquipmentTypeID: id, Total: total})
	}
	return rows
}

func adminActor() service.Actor {
	return service.Actor{ID: uuid.New(), Username: "admin", Role: model.RoleAdmin}
}

func baseActor(role string, base uuid.UUID) service.Actor {
	return service.Actor{ID: uuid.New(), Username: "officer", Role: role, BaseID: &base}
}
