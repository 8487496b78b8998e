package service

import (
	"context"
	"fmt"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/registry"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportService produces the dashboard aggregates and the Excel export.
// It queries the DB directly like the other read-only reporting paths.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type stageCount struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
}

// Dashboard returns stage distribution and overall progress for the lot list
// landing page.
func (s *ReportService) Dashboard(ctx context.Context) (map[string]interface{}, error) {
	var counts []stageCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT durum AS stage, COUNT(*) AS count
		FROM production_lots
		GROUP BY durum`).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("aşama dağılımı alınamadı: %w", err)
	}

	byStage := make(map[string]int64, len(counts))
	var total int64
	for _, c := range counts {
		byStage[c.Stage] = c.Count
		total += c.Count
	}

	var avgCompletion float64
	if err := s.db.WithContext(ctx).Raw(`
		SELECT COALESCE(AVG(tamamlanma), 0) FROM production_lots`).Scan(&avgCompletion).Error; err != nil {
		return nil, fmt.Errorf("ortalama tamamlanma alınamadı: %w", err)
	}

	var sampleCount int64
	if err := s.db.WithContext(ctx).Model(&entity.Sample{}).Count(&sampleCount).Error; err != nil {
		return nil, fmt.Errorf("numune sayısı alınamadı: %w", err)
	}

	// Ordered stage rows so the chart renders in manufacturing order.
	stages := make([]map[string]interface{}, 0, len(entity.Stages))
	for _, stage := range entity.Stages {
		stages = append(stages, map[string]interface{}{
			"stage":      stage,
			"completion": entity.StageCompletion(stage),
			"count":      byStage[stage],
		})
	}

	return map[string]interface{}{
		"total_lots":     total,
		"avg_completion": avgCompletion,
		"sample_count":   sampleCount,
		"stages":         stages,
	}, nil
}

// ExportLots writes all lots with their variant/binding summary into an xlsx
// workbook.
func (s *ReportService) ExportLots(ctx context.Context) (*excelize.File, error) {
	var lots []entity.ProductionLot
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&lots).Error; err != nil {
		return nil, fmt.Errorf("partiler okunamadı: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Partiler"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Parti No", "Model", "Müşteri", "Aşama", "Tamamlanma %", "Hedef Adet", "Varyant", "Bağlı QR"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, lot := range lots {
		variants, bindings, history := registry.Parse(lot.Details)
		bound := 0
		for _, v := range variants {
			if registry.ResolveBoundCode(v, bindings, history) != "" {
				bound++
			}
		}
		values := []interface{}{
			lot.ID, lot.Model, lot.Customer, lot.Stage, lot.Completion,
			lot.TargetQuantity, len(variants), bound,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	return f, nil
}
