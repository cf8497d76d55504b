package repository

import (
	"context"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EquipmentTypeRepository interface {
	Create(ctx context.Context, e *model.EquipmentType) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EquipmentType, error)
	List(ctx context.Context) ([]model.EquipmentType, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.EquipmentType, error)
}

type equipmentRepo struct{ db *gorm.DB }

func NewEquipmentTypeRepository(db *gorm.DB) EquipmentTypeRepository { return &equipmentRepo{db: db} }

func (r *equipmentRepo) Create(ctx context.Context, e *model.EquipmentType) error {
	return classify(r.db.WithContext(ctx).Create(e).Error)
}

func (r *equipmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EquipmentType, error) {
	var e model.EquipmentType
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *equipmentRepo) List(ctx context.Context) ([]model.EquipmentType, error) {
	var types []model.EquipmentType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *equipmentRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.EquipmentType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var types []model.EquipmentType
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&types).Error
	return types, err
}
