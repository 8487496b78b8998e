package entity

import "time"

// ProductSpec holds the manufacturing specification of one sock model:
// machine settings, yarn, and the size/color range the model is produced in.
type ProductSpec struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Model        string     `json:"model" gorm:"size:64;not null;uniqueIndex"`
	Name         string     `json:"name" gorm:"size:128;not null"`
	YarnType     string     `json:"yarn_type" gorm:"size:64"`
	MachineGauge string     `json:"machine_gauge" gorm:"size:32"`
	Sizes        JSONBArray `json:"sizes" gorm:"type:jsonb"`
	Colors       JSONBArray `json:"colors" gorm:"type:jsonb"`
	Notes        string     `json:"notes" gorm:"type:text"`
	CreatedBy    string     `json:"created_by" gorm:"size:32"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (ProductSpec) TableName() string {
	return "product_specs"
}
