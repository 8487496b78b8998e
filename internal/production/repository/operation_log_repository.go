package repository

import (
	"context"
	"time"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OperationLogRepository struct {
	db *gorm.DB
}

func NewOperationLogRepository(db *gorm.DB) *OperationLogRepository {
	return &OperationLogRepository{db: db}
}

// Log appends one audit record. Logging is best-effort; callers ignore the
// returned error on paths where the main operation already succeeded.
func (r *OperationLogRepository) Log(ctx context.Context, entityType, entityID, action, fromStage, toStage, content, operatorID string) error {
	log := &entity.OperationLog{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		FromStage:  fromStage,
		ToStage:    toStage,
		Content:    content,
		OperatorID: operatorID,
		CreatedAt:  time.Now(),
	}
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *OperationLogRepository) ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]entity.OperationLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []entity.OperationLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
