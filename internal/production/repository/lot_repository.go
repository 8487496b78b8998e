package repository

import (
	"context"
	"errors"
	"time"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"gorm.io/gorm"
)

type LotRepository struct {
	db *gorm.DB
}

func NewLotRepository(db *gorm.DB) *LotRepository {
	return &LotRepository{db: db}
}

func (r *LotRepository) DB() *gorm.DB {
	return r.db
}

func (r *LotRepository) Create(ctx context.Context, lot *entity.ProductionLot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

func (r *LotRepository) FindByID(ctx context.Context, id string) (*entity.ProductionLot, error) {
	var lot entity.ProductionLot
	err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

func (r *LotRepository) List(ctx context.Context, page, pageSize int, stage string) ([]entity.ProductionLot, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.ProductionLot{})
	if stage != "" {
		query = query.Where("durum = ?", stage)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lots []entity.ProductionLot
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&lots).Error
	return lots, total, err
}

// Update replaces the whole record without a version check. Used by the
// manual edit paths, which are explicitly allowed to clobber.
func (r *LotRepository) Update(ctx context.Context, lot *entity.ProductionLot) error {
	lot.Version++
	return r.db.WithContext(ctx).Save(lot).Error
}

// UpdateVersioned writes the lot's workflow state conditionally on the
// version read earlier. Zero rows affected means a concurrent writer got
// there first; the caller re-reads and retries the whole scan.
func (r *LotRepository) UpdateVersioned(ctx context.Context, lot *entity.ProductionLot) error {
	res := r.db.WithContext(ctx).
		Model(&entity.ProductionLot{}).
		Where("id = ? AND version = ?", lot.ID, lot.Version).
		Updates(map[string]interface{}{
			"durum":      lot.Stage,
			"tamamlanma": lot.Completion,
			"details":    lot.Details,
			"version":    lot.Version + 1,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	lot.Version++
	return nil
}

func (r *LotRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.ProductionLot{}, "id = ?", id).Error
}

// FindIDsByBoundCode returns ids of lots whose document binds the given QR
// code, checking both the canonical and the legacy document shape. Backs the
// best-effort cross-lot uniqueness check.
func (r *LotRepository) FindIDsByBoundCode(ctx context.Context, code string) ([]string, error) {
	var ids []string
	// The jsonpath filters are bound as parameters: their "?" filter syntax
	// would otherwise be consumed as bind placeholders in the raw SQL text.
	err := r.db.WithContext(ctx).Raw(`
		SELECT id FROM production_lots
		WHERE jsonb_path_exists(details, ?::jsonpath, jsonb_build_object('c', ?::text))
		   OR jsonb_path_exists(details, ?::jsonpath, jsonb_build_object('c', ?::text))`,
		`$."qrCodes".*."code" ? (@ == $c)`, code,
		`$."additionalDetails"."qrCodes".*."code" ? (@ == $c)`, code).Scan(&ids).Error
	return ids, err
}

// NextLotNumber returns the next numeric suffix for generated lot ids
// ("P001", "P002", ...). Manually assigned ids that carry no digits are
// ignored.
func (r *LotRepository) NextLotNumber(ctx context.Context) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(NULLIF(regexp_replace(id, '\D', '', 'g'), '')::int), 0)
		FROM production_lots`).Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
