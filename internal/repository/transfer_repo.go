package repository

import (
	"context"
	"time"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransferFilter scopes transfer listings. InvolvedBaseID matches rows where
// the base is either source or destination, mirroring what a base-scoped
// actor is allowed to see.
type TransferFilter struct {
	InvolvedBaseID  *uuid.UUID
	EquipmentTypeID *uuid.UUID
	From            *time.Time
	To              *time.Time
}

type TransferRepository interface {
	CreateTx(tx *gorm.DB, t *model.Transfer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transfer, error)
	// FindByIDForUpdateTx locks the transfer row, serializing concurrent
	// finalization attempts on the same transfer.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Transfer, error)
	// UpdateStatusTx transitions pending → status; the guard on the current
	// status makes the transition a compare-and-set even without the lock.
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	List(ctx context.Context, filter TransferFilter) ([]model.Transfer, error)
	// SumOutgoing totals quantities leaving a base in the period, excluding
	// cancelled transfers (their debit was refunded).
	SumOutgoing(ctx context.Context, filter MovementFilter) ([]EquipmentTotal, error)
	// SumIncoming totals quantities received in the period; only completed
	// transfers ever credit the destination.
	SumIncoming(ctx context.Context, filter MovementFilter) ([]EquipmentTotal, error)
	DB() *gorm.DB
}

type transferRepo struct{ db *gorm.DB }

func NewTransferRepository(db *gorm.DB) TransferRepository { return &transferRepo{db: db} }

func (r *transferRepo) CreateTx(tx *gorm.DB, t *model.Transfer) error {
	return classify(tx.Create(t).Error)
}

func (r *transferRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transfer, error) {
	var t model.Transfer
	err := r.db.WithContext(ctx).
		Preload("FromBase").Preload("ToBase").Preload("EquipmentType").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transferRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Transfer, error) {
	var t model.Transfer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transferRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	res := tx.Model(&model.Transfer{}).
		Where("id = ? AND status = ?", id, model.TransferPending).
		Update("status", status)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *transferRepo) List(ctx context.Context, filter TransferFilter) ([]model.Transfer, error) {
	q := r.db.WithContext(ctx).Model(&model.Transfer{}).
		Preload("FromBase").Preload("ToBase").Preload("EquipmentType").Preload("Creator")
	if filter.InvolvedBaseID != nil {
		q = q.Where("from_base_id = ? OR to_base_id = ?", *filter.InvolvedBaseID, *filter.InvolvedBaseID)
	}
	if filter.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *filter.EquipmentTypeID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", filter.To.AddDate(0, 0, 1))
	}

	var transfers []model.Transfer
	err := q.Order("created_at DESC").Find(&transfers).Error
	return transfers, err
}

func (r *transferRepo) SumOutgoing(ctx context.Context, filter MovementFilter) ([]EquipmentTotal, error) {
	q := r.db.WithContext(ctx).Model(&model.Transfer{}).
		Select("equipment_type_id, COALESCE(SUM(quantity), 0) AS total").
		Where("status <> ?", model.TransferCancelled).
		Group("equipment_type_id")
	if filter.BaseID != nil {
		q = q.Where("from_base_id = ?", *filter.BaseID)
	}
	if filter.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *filter.EquipmentTypeID)
	}
	q = filter.applyDateRange(q, "created_at")

	var rows []EquipmentTotal
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *transferRepo) SumIncoming(ctx context.Context, filter MovementFilter) ([]EquipmentTotal, error) {
	q := r.db.WithContext(ctx).Model(&model.Transfer{}).
		Select("equipment_type_id, COALESCE(SUM(quantity), 0) AS total").
		Where("status = ?", model.TransferCompleted).
		Group("equipment_type_id")
	if filter.BaseID != nil {
		q = q.Where("to_base_id = ?", *filter.BaseID)
	}
	if filter.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *filter.EquipmentTypeID)
	}
	q = filter.applyDateRange(q, "created_at")

	var rows []EquipmentTotal
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *transferRepo) DB() *gorm.DB { return r.db }
