package entity

import "time"

// ProductionLot is one production run tracked through the
// manufacturing stages. The relational columns hold the summary the list
// pages need; everything the scan workflow touches (variants, QR bindings,
// scan history) lives in the Details document so legacy records keep working.
type ProductionLot struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	Model          string    `json:"model" gorm:"size:64"`
	Customer       string    `json:"customer" gorm:"size:128"`
	Stage          string    `json:"stage" gorm:"column:durum;size:32;not null;default:Üretim"`
	Completion     int       `json:"completion" gorm:"column:tamamlanma;not null;default:20"`
	TargetQuantity int       `json:"target_quantity" gorm:"not null;default:0"`
	Notes          string    `json:"notes" gorm:"type:text"`
	Version        int       `json:"version" gorm:"not null;default:0"`
	Details        JSONB     `json:"details" gorm:"type:jsonb"`
	CreatedBy      string    `json:"created_by" gorm:"size:32"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ProductionLot) TableName() string {
	return "production_lots"
}

// Variant is a color/size combination within a lot, stored inside the lot
// document. JSON keys are camelCase because that is the shape the original
// records were written in; do not change them.
type Variant struct {
	ID             string `json:"id"`
	Model          string `json:"model"`
	Color          string `json:"color"`
	Size           string `json:"size"`
	TargetQuantity int    `json:"targetQuantity"`
	// BoundCode mirrors the ledger entry for older readers of the document.
	BoundCode string `json:"boundCode,omitempty"`
}

// ScanRecord is one accepted scan, appended to the document's scanHistory.
// Timestamp is RFC3339 so the document stays plain JSON.
type ScanRecord struct {
	Code      string `json:"code"`
	VariantID string `json:"variantId"`
	Stage     string `json:"stage"`
	Timestamp string `json:"timestamp"`
}
