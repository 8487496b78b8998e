package service

import (
	"context"
	"fmt"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/ledger"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/registry"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"go.uber.org/zap"
)

type LotService struct {
	lotRepo *repository.LotRepository
	logRepo *repository.OperationLogRepository
	logger  *zap.Logger
}

func NewLotService(lotRepo *repository.LotRepository, logRepo *repository.OperationLogRepository, logger *zap.Logger) *LotService {
	return &LotService{lotRepo: lotRepo, logRepo: logRepo, logger: logger}
}

// VariantInput describes one color/size line of a lot.
type VariantInput struct {
	ID             string `json:"id"`
	Model          string `json:"model"`
	Color          string `json:"color"`
	Size           string `json:"size"`
	TargetQuantity int    `json:"target_quantity"`
}

// CreateLotRequest creates a production lot with its variant breakdown.
type CreateLotRequest struct {
	ID             string         `json:"id"`
	Model          string         `json:"model" binding:"required"`
	Customer       string         `json:"customer"`
	TargetQuantity int            `json:"target_quantity"`
	Notes          string         `json:"notes"`
	Variants       []VariantInput `json:"variants"`
}

// UpdateLotRequest edits lot metadata and optionally replaces the variant
// list. Bindings are keyed by variant id, so variants that keep their id
// keep their binding.
type UpdateLotRequest struct {
	Model          *string        `json:"model"`
	Customer       *string        `json:"customer"`
	TargetQuantity *int           `json:"target_quantity"`
	Notes          *string        `json:"notes"`
	Variants       []VariantInput `json:"variants"`
}

// LotView is a lot with its document resolved into typed form for the UI.
type LotView struct {
	*entity.ProductionLot
	Variants    []ResolvedVariant   `json:"variants"`
	ScanHistory []entity.ScanRecord `json:"scan_history"`
}

// ResolvedVariant carries the bound code after the three-tier resolution.
type ResolvedVariant struct {
	entity.Variant
	ResolvedCode  string `json:"resolved_code,omitempty"`
	BoundQuantity int    `json:"bound_quantity,omitempty"`
}

func (s *LotService) List(ctx context.Context, page, pageSize int, stage string) ([]entity.ProductionLot, int64, error) {
	return s.lotRepo.List(ctx, page, pageSize, stage)
}

func (s *LotService) Get(ctx context.Context, id string) (*LotView, error) {
	lot, err := s.lotRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildView(lot), nil
}

func (s *LotService) buildView(lot *entity.ProductionLot) *LotView {
	variants, bindings, history := registry.Parse(lot.Details)
	view := &LotView{ProductionLot: lot, ScanHistory: history}
	for _, v := range variants {
		rv := ResolvedVariant{
			Variant:      v,
			ResolvedCode: registry.ResolveBoundCode(v, bindings, history),
		}
		if e, ok := bindings[v.ID]; ok {
			rv.BoundQuantity = e.Quantity
		}
		view.Variants = append(view.Variants, rv)
	}
	return view
}

func (s *LotService) Create(ctx context.Context, req *CreateLotRequest, userID string) (*entity.ProductionLot, error) {
	id := req.ID
	if id == "" {
		n, err := s.lotRepo.NextLotNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("parti numarası üretilemedi: %w", err)
		}
		id = fmt.Sprintf("P%03d", n)
	}

	variants := buildVariants(req.Variants)
	target := req.TargetQuantity
	if target == 0 {
		for _, v := range variants {
			target += v.TargetQuantity
		}
	}

	lot := &entity.ProductionLot{
		ID:             id,
		Model:          req.Model,
		Customer:       req.Customer,
		Stage:          entity.StageUretim,
		Completion:     entity.StageCompletion(entity.StageUretim),
		TargetQuantity: target,
		Notes:          req.Notes,
		Details:        registry.Merge(nil, variants, ledger.Ledger{}, nil),
		CreatedBy:      userID,
	}

	if err := s.lotRepo.Create(ctx, lot); err != nil {
		return nil, fmt.Errorf("parti oluşturulamadı: %w", err)
	}

	s.logger.Info("Lot created",
		zap.String("lot_id", lot.ID),
		zap.String("model", lot.Model),
		zap.Int("variants", len(variants)))

	return lot, nil
}

func (s *LotService) Update(ctx context.Context, id string, req *UpdateLotRequest) (*entity.ProductionLot, error) {
	lot, err := s.lotRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Model != nil {
		lot.Model = *req.Model
	}
	if req.Customer != nil {
		lot.Customer = *req.Customer
	}
	if req.TargetQuantity != nil {
		lot.TargetQuantity = *req.TargetQuantity
	}
	if req.Notes != nil {
		lot.Notes = *req.Notes
	}
	if req.Variants != nil {
		_, bindings, history := registry.Parse(lot.Details)
		variants := buildVariants(req.Variants)
		// Re-mirror bound codes onto variants that kept their id.
		for i := range variants {
			if e, ok := bindings[variants[i].ID]; ok {
				variants[i].BoundCode = e.Code
			}
		}
		lot.Details = registry.Merge(lot.Details, variants, bindings, history)
	}

	if err := s.lotRepo.Update(ctx, lot); err != nil {
		return nil, fmt.Errorf("parti güncellenemedi: %w", err)
	}

	return lot, nil
}

// StageUpdateRequest is the manual correction endpoint's payload. Field
// names match the operator UI: durum is the stage, tamamlanma the completion.
type StageUpdateRequest struct {
	Stage      string `json:"durum" binding:"required"`
	Completion *int   `json:"tamamlanma"`
}

// UpdateStage is the manual escape hatch: it writes stage and completion
// directly, bypassing ledger and scan validation on purpose. When no
// completion is given the stage's canonical percentage is used.
func (s *LotService) UpdateStage(ctx context.Context, id string, req *StageUpdateRequest, operatorID string) (*entity.ProductionLot, error) {
	lot, err := s.lotRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fromStage := lot.Stage
	lot.Stage = req.Stage
	if req.Completion != nil {
		lot.Completion = *req.Completion
	} else {
		lot.Completion = entity.StageCompletion(req.Stage)
	}

	if err := s.lotRepo.Update(ctx, lot); err != nil {
		return nil, fmt.Errorf("aşama güncellenemedi: %w", err)
	}

	content := fmt.Sprintf("manuel aşama güncellemesi: %s → %s (%%%d)", fromStage, lot.Stage, lot.Completion)
	if err := s.logRepo.Log(ctx, "lot", lot.ID, "stage_override", fromStage, lot.Stage, content, operatorID); err != nil {
		s.logger.Warn("Failed to write operation log", zap.Error(err))
	}

	return lot, nil
}

func (s *LotService) Delete(ctx context.Context, id string) error {
	if _, err := s.lotRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.lotRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("parti silinemedi: %w", err)
	}
	return nil
}

// History returns the audit trail of scan and stage actions for a lot.
func (s *LotService) History(ctx context.Context, id string, limit int) ([]entity.OperationLog, error) {
	return s.logRepo.ListByEntity(ctx, "lot", id, limit)
}

func buildVariants(inputs []VariantInput) []entity.Variant {
	var variants []entity.Variant
	for i, in := range inputs {
		id := in.ID
		if id == "" {
			id = fmt.Sprintf("v%d", i+1)
		}
		variants = append(variants, entity.Variant{
			ID:             id,
			Model:          in.Model,
			Color:          in.Color,
			Size:           in.Size,
			TargetQuantity: in.TargetQuantity,
		})
	}
	return variants
}
