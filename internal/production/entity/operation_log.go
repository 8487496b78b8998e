package entity

import "time"

// OperationLog is the append-only audit trail of scan and stage actions.
type OperationLog struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	EntityType string    `json:"entity_type" gorm:"size:32;not null;index:idx_operation_logs_entity"`
	EntityID   string    `json:"entity_id" gorm:"size:32;not null;index:idx_operation_logs_entity"`
	Action     string    `json:"action" gorm:"size:50;not null"`
	FromStage  string    `json:"from_stage" gorm:"size:32"`
	ToStage    string    `json:"to_stage" gorm:"size:32"`
	Content    string    `json:"content" gorm:"type:text"`
	OperatorID string    `json:"operator_id" gorm:"size:64"`
	CreatedAt  time.Time `json:"created_at"`
}

func (OperationLog) TableName() string {
	return "operation_logs"
}
