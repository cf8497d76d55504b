package repository

import (
	"context"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseRepository interface {
	Create(ctx context.Context, b *model.Base) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Base, error)
	List(ctx context.Context) ([]model.Base, error)
	Update(ctx context.Context, b *model.Base) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type baseRepo struct{ db *gorm.DB }

func NewBaseRepository(db *gorm.DB) BaseRepository { return &baseRepo{db: db} }

func (r *baseRepo) Create(ctx context.Context, b *model.Base) error {
	return classify(r.db.WithContext(ctx).Create(b).Error)
}

func (r *baseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Base, error) {
	var b model.Base
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *baseRepo) List(ctx context.Context) ([]model.Base, error) {
	var bases []model.Base
	err := r.db.WithContext(ctx).Order("name ASC").Find(&bases).Error
	return bases, err
}

func (r *baseRepo) Update(ctx context.Context, b *model.Base) error {
	return classify(r.db.WithContext(ctx).Save(b).Error)
}

func (r *baseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Base{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
