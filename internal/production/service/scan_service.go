package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/ledger"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/registry"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Rejection reasons. Every one of these is recoverable by the operator
// (re-select, re-enter the quantity, re-scan the right label) and leaves the
// stored lot untouched.
const (
	RejectNoVariantSelected   = "NoVariantSelected"
	RejectQuantityOutOfRange  = "QuantityOutOfRange"
	RejectDuplicateCodeLocal  = "DuplicateCodeLocal"
	RejectDuplicateCodeGlobal = "DuplicateCodeGlobal"
	RejectAlreadyBound        = "AlreadyBoundConflict"
	RejectCodeMismatch        = "CodeMismatch"
)

// ErrStoreUnavailable wraps persistence failures. No automatic retry beyond
// the single version-conflict retry; the operator re-offers the scan.
var ErrStoreUnavailable = errors.New("production record store unavailable")

// Rejection is a typed refusal of one scan event.
type Rejection struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (r *Rejection) Error() string {
	return r.Message
}

func reject(reason, format string, args ...interface{}) *Rejection {
	return &Rejection{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// ScanInput is the operator-selected context plus the decoded label text.
type ScanInput struct {
	VariantID string `json:"variant_id"`
	Stage     string `json:"stage" binding:"required"`
	Quantity  int    `json:"quantity"`
	Code      string `json:"code" binding:"required"`
}

// ScanService turns one scan event into either an updated lot or a typed
// rejection with no partial side effects.
type ScanService struct {
	lotRepo *repository.LotRepository
	logRepo *repository.OperationLogRepository
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewScanService(lotRepo *repository.LotRepository, logRepo *repository.OperationLogRepository, rdb *redis.Client, logger *zap.Logger) *ScanService {
	return &ScanService{
		lotRepo: lotRepo,
		logRepo: logRepo,
		rdb:     rdb,
		logger:  logger,
	}
}

// HandleScan runs the full scan workflow against one lot. A version conflict
// on the final write retries the whole read-modify-write once, so two
// stations scanning the same lot cannot silently overwrite each other.
func (s *ScanService) HandleScan(ctx context.Context, lotID string, input ScanInput, operatorID string) (*entity.ProductionLot, error) {
	lot, err := s.applyScan(ctx, lotID, input, operatorID)
	if errors.Is(err, repository.ErrVersionConflict) {
		s.logger.Warn("Concurrent lot update, retrying scan",
			zap.String("lot_id", lotID),
			zap.String("variant_id", input.VariantID))
		lot, err = s.applyScan(ctx, lotID, input, operatorID)
	}
	if errors.Is(err, repository.ErrVersionConflict) {
		return nil, fmt.Errorf("%w: lot %s is being updated by another station", ErrStoreUnavailable, lotID)
	}
	return lot, err
}

func (s *ScanService) applyScan(ctx context.Context, lotID string, input ScanInput, operatorID string) (*entity.ProductionLot, error) {
	lot, err := s.lotRepo.FindByID(ctx, lotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if !entity.IsValidStage(input.Stage) {
		return nil, fmt.Errorf("unknown stage: %s", input.Stage)
	}

	variants, bindings, history := registry.Parse(lot.Details)

	// Preconditions: fail fast, mutate nothing.
	if input.VariantID == "" {
		return nil, reject(RejectNoVariantSelected, "önce bir varyant seçin")
	}
	variantIdx := -1
	for i := range variants {
		if variants[i].ID == input.VariantID {
			variantIdx = i
			break
		}
	}
	if variantIdx < 0 {
		return nil, reject(RejectNoVariantSelected, "varyant bulunamadı: %s", input.VariantID)
	}
	variant := &variants[variantIdx]

	if input.Stage == entity.StageUretim {
		if input.Quantity <= 0 || input.Quantity > variant.TargetQuantity {
			return nil, reject(RejectQuantityOutOfRange,
				"üretim adedi 1 ile %d arasında olmalı (girilen: %d)", variant.TargetQuantity, input.Quantity)
		}
	}

	// A scan binds only on the first Üretim pass; everything else verifies.
	binding := input.Stage == entity.StageUretim && !bindings.IsBound(variant.ID)

	if binding {
		if owner, ok := bindings.Owner(input.Code); ok && owner != variant.ID {
			return nil, reject(RejectDuplicateCodeLocal,
				"kod %s bu partide başka bir varyanta bağlı (%s)", input.Code, owner)
		}
		if s.checkGlobalUniqueness(ctx, input.Code, lotID) == ledger.GlobalMatch {
			return nil, reject(RejectDuplicateCodeGlobal,
				"kod %s başka bir partide zaten kullanılıyor", input.Code)
		}
		if _, err := bindings.Bind(variant.ID, input.Code, input.Quantity); err != nil {
			switch {
			case errors.Is(err, ledger.ErrAlreadyBound):
				return nil, reject(RejectAlreadyBound,
					"varyant %s zaten farklı bir koda bağlı", variant.ID)
			case errors.Is(err, ledger.ErrDuplicateCode):
				return nil, reject(RejectDuplicateCodeLocal,
					"kod %s bu partide zaten kullanılıyor", input.Code)
			default:
				return nil, err
			}
		}
		variant.BoundCode = input.Code
	} else {
		if bindings.Verify(variant.ID, input.Code) == ledger.Mismatch {
			return nil, reject(RejectCodeMismatch,
				"kod uyuşmuyor, lütfen doğru etiketi okutun")
		}
	}

	fromStage := lot.Stage
	lot.Completion = entity.Advance(lot.Stage, input.Stage)
	lot.Stage = input.Stage
	history = append(history, entity.ScanRecord{
		Code:      input.Code,
		VariantID: variant.ID,
		Stage:     input.Stage,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	lot.Details = registry.Merge(lot.Details, variants, bindings, history)

	if err := s.lotRepo.UpdateVersioned(ctx, lot); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if binding {
		s.indexCode(ctx, input.Code, lotID)
	}

	action := "scan_verify"
	if binding {
		action = "scan_bind"
	}
	content := fmt.Sprintf("%s: varyant %s, kod %s, aşama %s", action, variant.ID, input.Code, input.Stage)
	if err := s.logRepo.Log(ctx, "lot", lot.ID, action, fromStage, lot.Stage, content, operatorID); err != nil {
		s.logger.Warn("Failed to write operation log", zap.Error(err))
	}

	s.logger.Info("Scan accepted",
		zap.String("lot_id", lot.ID),
		zap.String("variant_id", variant.ID),
		zap.String("stage", lot.Stage),
		zap.Int("completion", lot.Completion),
		zap.Bool("binding", binding))

	return lot, nil
}

// checkGlobalUniqueness asks whether code is bound in any other lot. The
// redis index is the fast path; the jsonb document query is the fallback.
// Any lookup failure yields GlobalUnknown, which deliberately does not block
// the bind: local uniqueness is strict, global uniqueness is advisory.
func (s *ScanService) checkGlobalUniqueness(ctx context.Context, code, lotID string) ledger.GlobalResult {
	if s.rdb != nil {
		owner, err := s.rdb.Get(ctx, codeIndexKey(code)).Result()
		if err == nil {
			if owner != "" && owner != lotID {
				return ledger.GlobalMatch
			}
			return ledger.GlobalNoMatch
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Redis code index lookup failed", zap.String("code", code), zap.Error(err))
		}
	}

	ids, err := s.lotRepo.FindIDsByBoundCode(ctx, code)
	if err != nil {
		s.logger.Warn("Cross-lot code lookup failed", zap.String("code", code), zap.Error(err))
		return ledger.GlobalUnknown
	}
	for _, id := range ids {
		if id != lotID {
			return ledger.GlobalMatch
		}
	}
	return ledger.GlobalNoMatch
}

// indexCode records the code→lot mapping in redis, best-effort.
func (s *ScanService) indexCode(ctx context.Context, code, lotID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.SetNX(ctx, codeIndexKey(code), lotID, 0).Err(); err != nil {
		s.logger.Warn("Failed to index bound code", zap.String("code", code), zap.Error(err))
	}
}

func codeIndexKey(code string) string {
	return "qr:code:" + code
}
