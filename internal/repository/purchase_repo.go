package repository

import (
	"context"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	// CreateTx inserts inside the caller's transaction, atomically with the
	// balance credit.
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	List(ctx context.Context, filter MovementFilter) ([]model.Purchase, error)
	SumByEquipment(ctx context.Context, filter MovementFilter) ([]EquipmentTotal, error)
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return classify(tx.Create(p).Error)
}

func (r *purchaseRepo) List(ctx context.Context, filter MovementFilter) ([]model.Purchase, error) {
	q := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Preload("Base").Preload("EquipmentType").Preload("Creator")
	if filter.BaseID != nil {
		q = q.Where("base_id = ?", *filter.BaseID)
	}
	if filter.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *filter.EquipmentTypeID)
	}
	q = filter.applyDateRange(q, "purchase_date")

	var purchases []model.Purchase
	err := q.Order("purchase_date DESC, created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) SumByEquipment(ctx context.Context, filter MovementFilter) ([]EquipmentTotal, error) {
	q := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Select("equipment_type_id, COALESCE(SUM(quantity), 0) AS total").
		Group("equipment_type_id")
	if filter.BaseID != nil {
		q = q.Where("base_id = ?", *filter.BaseID)
	}
	if filter.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *filter.EquipmentTypeID)
	}
	q = filter.applyDateRange(q, "purchase_date")

	var rows []EquipmentTotal
	err := q.Scan(&rows).Error
	return rows, err
}
