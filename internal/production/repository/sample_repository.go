package repository

import (
	"context"
	"errors"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"gorm.io/gorm"
)

type SampleRepository struct {
	db *gorm.DB
}

func NewSampleRepository(db *gorm.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

func (r *SampleRepository) Create(ctx context.Context, sample *entity.Sample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

func (r *SampleRepository) FindByID(ctx context.Context, id string) (*entity.Sample, error) {
	var sample entity.Sample
	err := r.db.WithContext(ctx).First(&sample, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sample, nil
}

func (r *SampleRepository) List(ctx context.Context, page, pageSize int, status string) ([]entity.Sample, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Sample{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var samples []entity.Sample
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&samples).Error
	return samples, total, err
}

func (r *SampleRepository) Update(ctx context.Context, sample *entity.Sample) error {
	return r.db.WithContext(ctx).Save(sample).Error
}

func (r *SampleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Sample{}, "id = ?", id).Error
}
