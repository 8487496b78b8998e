package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict means another writer updated the lot between our
	// read and write; the caller re-reads and retries.
	ErrVersionConflict = errors.New("lot was modified concurrently")
)

// Repositories bundles all repositories around one DB handle.
type Repositories struct {
	Lot          *LotRepository
	Sample       *SampleRepository
	ProductSpec  *ProductSpecRepository
	OperationLog *OperationLogRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Lot:          NewLotRepository(db),
		Sample:       NewSampleRepository(db),
		ProductSpec:  NewProductSpecRepository(db),
		OperationLog: NewOperationLogRepository(db),
	}
}
