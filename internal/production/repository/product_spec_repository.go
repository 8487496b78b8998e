package repository

import (
	"context"
	"errors"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"gorm.io/gorm"
)

type ProductSpecRepository struct {
	db *gorm.DB
}

func NewProductSpecRepository(db *gorm.DB) *ProductSpecRepository {
	return &ProductSpecRepository{db: db}
}

func (r *ProductSpecRepository) Create(ctx context.Context, spec *entity.ProductSpec) error {
	return r.db.WithContext(ctx).Create(spec).Error
}

func (r *ProductSpecRepository) FindByID(ctx context.Context, id string) (*entity.ProductSpec, error) {
	var spec entity.ProductSpec
	err := r.db.WithContext(ctx).First(&spec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &spec, nil
}

func (r *ProductSpecRepository) FindByModel(ctx context.Context, model string) (*entity.ProductSpec, error) {
	var spec entity.ProductSpec
	err := r.db.WithContext(ctx).First(&spec, "model = ?", model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &spec, nil
}

func (r *ProductSpecRepository) List(ctx context.Context) ([]entity.ProductSpec, error) {
	var specs []entity.ProductSpec
	err := r.db.WithContext(ctx).Order("model ASC").Find(&specs).Error
	return specs, err
}

func (r *ProductSpecRepository) Update(ctx context.Context, spec *entity.ProductSpec) error {
	return r.db.WithContext(ctx).Save(spec).Error
}

func (r *ProductSpecRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.ProductSpec{}, "id = ?", id).Error
}
