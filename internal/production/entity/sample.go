package entity

import "time"

// Sample statuses.
const (
	SampleStatusPending  = "pending"
	SampleStatusKnitted  = "knitted"
	SampleStatusShipped  = "shipped"
	SampleStatusApproved = "approved"
	SampleStatusRejected = "rejected"
)

// Sample is a customer sample request tracked ahead of production.
type Sample struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	Name        string     `json:"name" gorm:"size:128;not null"`
	Customer    string     `json:"customer" gorm:"size:128"`
	Model       string     `json:"model" gorm:"size:64"`
	Quantity    int        `json:"quantity" gorm:"default:0"`
	YarnType    string     `json:"yarn_type" gorm:"size:64"`
	WeightGrams float64    `json:"weight_grams" gorm:"type:numeric(10,2);default:0"`
	Status      string     `json:"status" gorm:"size:16;not null;default:pending"`
	Notes       string     `json:"notes" gorm:"type:text"`
	Details     JSONB      `json:"details" gorm:"type:jsonb"`
	DueDate     *time.Time `json:"due_date" gorm:"type:date"`
	CreatedBy   string     `json:"created_by" gorm:"size:32"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Sample) TableName() string {
	return "samples"
}
