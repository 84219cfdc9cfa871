package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/supply-agreements/internal/model"
)

// ReferenceRepository answers the existence and lookup questions the
// agreement core asks about its collaborator tables. Read-only.
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.User{}, id)
}

func (r *ReferenceRepository) WarehouseExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.Warehouse{}, id)
}

func (r *ReferenceRepository) MaterialExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.Material{}, id)
}

func (r *ReferenceRepository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *ReferenceRepository) GetWarehouse(ctx context.Context, id int64) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, id).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *ReferenceRepository) GetMaterial(ctx context.Context, id int64) (*model.Material, error) {
	var material model.Material
	if err := r.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func exists(db *gorm.DB, entity interface{}, id int64) (bool, error) {
	var count int64
	if err := db.Model(entity).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
