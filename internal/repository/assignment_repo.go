package repository

import (
	"context"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository interface {
	CreateTx(tx *gorm.DB, a *model.Assignment) error
	List(ctx context.Context, filter MovementFilter) ([]model.Assignment, error)
	SumByKind(ctx context.Context, kind string, filter MovementFilter) ([]EquipmentTotal, error)
}

type assignmentRepo struct{ db *gorm.DB }

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository { return &assignmentRepo{db: db} }

func (r *assignmentRepo) CreateTx(tx *gorm.DB, a *model.Assignment) error {
	return classify(tx.Create(a).Error)
}

func (r *assignmentRepo) List(ctx context.Context, filter MovementFilter) ([]model.Assignment, error) {
	q := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Preload("Base").Preload("EquipmentType").Preload("Assignee").Preload("Creator")
	if filter.BaseID != nil {
		q = q.Where("base_id = ?", *filter.BaseID)
	}
	if filter.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *filter.EquipmentTypeID)
	}
	q = filter.applyDateRange(q, "created_at")

	var assignments []model.Assignment
	err := q.Order("created_at DESC").Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) SumByKind(ctx context.Context, kind string, filter MovementFilter) ([]EquipmentTotal, error) {
	q := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Select("equipment_type_id, COALESCE(SUM(quantity), 0) AS total").
		Where("kind = ?", kind).
		Group("equipment_type_id")
	if filter.BaseID != nil {
		q = q.Where("base_id = ?", *filter.BaseID)
	}
	if filter.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *filter.EquipmentTypeID)
	}
	q = filter.applyDateRange(q, "created_at")

	var rows []EquipmentTotal
	err := q.Scan(&rows).Error
	return rows, err
}
