package service

import (
	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services bundles the application services.
type Services struct {
	Lot     *LotService
	Scan    *ScanService
	Sample  *SampleService
	Product *ProductService
	Report  *ReportService
}

func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) *Services {
	return &Services{
		Lot:     NewLotService(repos.Lot, repos.OperationLog, logger),
		Scan:    NewScanService(repos.Lot, repos.OperationLog, rdb, logger),
		Sample:  NewSampleService(repos.Sample),
		Product: NewProductService(repos.ProductSpec),
		Report:  NewReportService(db),
	}
}
