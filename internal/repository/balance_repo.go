package repository

import (
	"context"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceFilter scopes balance listings and the closing-balance aggregate.
type BalanceFilter struct {
	BaseID          *uuid.UUID
	EquipmentTypeID *uuid.UUID
}

// BalanceRepository is the balance store. Balance rows are written only
// through AddTx/ApplyDeltaTx inside a transaction; Get and List are
// snapshot reads for reporting and may be stale relative to in-flight
// transactions — never use them for mutation decisions.
type BalanceRepository interface {
	// Get is a snapshot read without a lock.
	Get(ctx context.Context, baseID, equipmentTypeID uuid.UUID) (*model.Balance, error)
	// GetForUpdateTx reads the row under an exclusive FOR UPDATE lock held
	// until tx commit/rollback, serializing concurrent mutators of the key.
	GetForUpdateTx(tx *gorm.DB, baseID, equipmentTypeID uuid.UUID) (*model.Balance, error)
	// AddTx credits the balance, creating the row lazily on first credit.
	AddTx(tx *gorm.DB, baseID, equipmentTypeID uuid.UUID, quantity int) error
	// ApplyDeltaTx applies a signed delta, rejecting with ErrNegativeBalance
	// when the result would go below zero.
	ApplyDeltaTx(tx *gorm.DB, baseID, equipmentTypeID uuid.UUID, delta int) error
	List(ctx context.Context, filter BalanceFilter) ([]model.Balance, error)
	SumByEquipment(ctx context.Context, filter BalanceFilter) ([]EquipmentTotal, error)
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type balanceRepo struct{ db *gorm.DB }

func NewBalanceRepository(db *gorm.DB) BalanceRepository { return &balanceRepo{db: db} }

func (r *balanceRepo) Get(ctx context.Context, baseID, equipmentTypeID uuid.UUID) (*model.Balance, error) {
	var b model.Balance
	err := r.db.WithContext(ctx).
		Where("base_id = ? AND equipment_type_id = ?", baseID, equipmentTypeID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *balanceRepo) GetForUpdateTx(tx *gorm.DB, baseID, equipmentTypeID uuid.UUID) (*model.Balance, error) {
	var b model.Balance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("base_id = ? AND equipment_type_id = ?", baseID, equipmentTypeID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *balanceRepo) AddTx(tx *gorm.DB, baseID, equipmentTypeID uuid.UUID, quantity int) error {
	b := &model.Balance{
		BaseID:          baseID,
		EquipmentTypeID: equipmentTypeID,
		CurrentBalance:  quantity,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "base_id"}, {Name: "equipment_type_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"current_balance": gorm.Expr("balances.current_balance + ?", quantity),
			"last_updated":    gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(b).Error
	return classify(err)
}

func (r *balanceRepo) ApplyDeltaTx(tx *gorm.DB, baseID, equipmentTypeID uuid.UUID, delta int) error {
	res := tx.Model(&model.Balance{}).
		Where("base_id = ? AND equipment_type_id = ? AND current_balance + ? >= 0",
			baseID, equipmentTypeID, delta).
		Updates(map[string]interface{}{
			"current_balance": gorm.Expr("current_balance + ?", delta),
			"last_updated":    gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return classify(res.Error)
	}
	// Zero rows means the row is missing or the guard rejected the delta;
	// with the caller's FOR UPDATE pre-check both reduce to an overdraft.
	if res.RowsAffected == 0 {
		return ErrNegativeBalance
	}
	return nil
}

func (r *balanceRepo) List(ctx context.Context, filter BalanceFilter) ([]model.Balance, error) {
	q := r.db.WithContext(ctx).Model(&model.Balance{}).
		Preload("Base").Preload("EquipmentType")
	if filter.BaseID != nil {
		q = q.Where("base_id = ?", *filter.BaseID)
	}
	if filter.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *filter.EquipmentTypeID)
	}
	var balances []model.Balance
	err := q.Order("last_updated DESC").Find(&balances).Error
	return balances, err
}

func (r *balanceRepo) SumByEquipment(ctx context.Context, filter BalanceFilter) ([]EquipmentTotal, error) {
	q := r.db.WithContext(ctx).Model(&model.Balance{}).
		Select("equipment_type_id, COALESCE(SUM(current_balance), 0) AS total").
		Group("equipment_type_id")
	if filter.BaseID != nil {
		q = q.Where("base_id = ?", *filter.BaseID)
	}
	if filter.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *filter.EquipmentTypeID)
	}
	var rows []EquipmentTotal
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *balanceRepo) DB() *gorm.DB { return r.db }
