package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/registry"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/scanner"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/service"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/testutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupScanTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	logger := zap.NewNop()
	lotSvc := service.NewLotService(repos.Lot, repos.OperationLog, logger)
	// rdb nil: global uniqueness falls back to the document query.
	scanSvc := service.NewScanService(repos.Lot, repos.OperationLog, nil, logger)

	lotHandler := NewLotHandler(lotSvc)
	scanHandler := NewScanHandler(scanSvc, scanner.NewHub())

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	lots := api.Group("/lots")
	lots.GET("/:id", lotHandler.Get)
	lots.PUT("/:id/stage", lotHandler.UpdateStage)
	lots.POST("/:id/scan", scanHandler.Scan)
	lots.POST("/:id/scan-sessions", scanHandler.OpenSession)

	sessions := api.Group("/scan-sessions")
	sessions.POST("/:sid/decode", scanHandler.Decode)
	sessions.POST("/:sid/resume", scanHandler.ResumeSession)
	sessions.DELETE("/:sid", scanHandler.CloseSession)

	return router, db
}

func seedLotWithVariants(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	details := entity.JSONB{
		"variants": []interface{}{
			map[string]interface{}{
				"id": "v1", "model": "M100", "color": "Siyah", "size": "42",
				"targetQuantity": float64(50),
			},
			map[string]interface{}{
				"id": "v2", "model": "M100", "color": "Beyaz", "size": "43",
				"targetQuantity": float64(30),
			},
		},
	}
	testutil.SeedTestLot(t, db, id, "M100", 80, details)
}

func scanBody(variantID, stage string, quantity int, code string) map[string]interface{} {
	return map[string]interface{}{
		"variant_id": variantID,
		"stage":      stage,
		"quantity":   quantity,
		"code":       code,
	}
}

func rejectionReason(t *testing.T, resp map[string]interface{}) string {
	t.Helper()
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("rejection response carries no data: %+v", resp)
	}
	reason, _ := data["reason"].(string)
	return reason
}

func TestScanBindThenVerifyWorkflow(t *testing.T) {
	router, db := setupScanTest(t)
	token := testutil.DefaultTestToken()
	seedLotWithVariants(t, db, "P010")

	// First Üretim scan binds the code.
	w := testutil.DoRequest(router, "POST", "/api/v1/lots/P010/scan",
		scanBody("v1", entity.StageUretim, 40, "ABC123"), token)
	if w.Code != http.StatusOK {
		t.Fatalf("bind scan: status %d, body %s", w.Code, w.Body.String())
	}

	var lot entity.ProductionLot
	if err := db.First(&lot, "id = ?", "P010").Error; err != nil {
		t.Fatalf("reload lot: %v", err)
	}
	_, bindings, history := registry.Parse(lot.Details)
	if bindings["v1"].Code != "ABC123" || bindings["v1"].Quantity != 40 {
		t.Fatalf("binding not persisted: %+v", bindings)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history))
	}

	// Later stage with the same code verifies and moves the stage.
	w = testutil.DoRequest(router, "POST", "/api/v1/lots/P010/scan",
		scanBody("v1", entity.StageYikama, 0, "ABC123"), token)
	if w.Code != http.StatusOK {
		t.Fatalf("verify scan: status %d, body %s", w.Code, w.Body.String())
	}

	db.First(&lot, "id = ?", "P010")
	if lot.Stage != entity.StageYikama || lot.Completion != 60 {
		t.Errorf("stage after verify: %s %%%d, want Yıkama %%60", lot.Stage, lot.Completion)
	}

	// Wrong code at a later stage is rejected and changes nothing.
	w = testutil.DoRequest(router, "POST", "/api/v1/lots/P010/scan",
		scanBody("v1", entity.StageKurutma, 0, "XYZ999"), token)
	if w.Code != http.StatusConflict {
		t.Fatalf("mismatch scan: status %d, body %s", w.Code, w.Body.String())
	}
	if reason := rejectionReason(t, testutil.ParseResponse(w)); reason != service.RejectCodeMismatch {
		t.Errorf("reason = %q, want CodeMismatch", reason)
	}

	db.First(&lot, "id = ?", "P010")
	if lot.Stage != entity.StageYikama || lot.Completion != 60 {
		t.Errorf("rejected scan mutated the lot: %s %%%d", lot.Stage, lot.Completion)
	}
	_, bindings, history = registry.Parse(lot.Details)
	if bindings["v1"].Code != "ABC123" {
		t.Errorf("rejected scan changed the binding: %+v", bindings)
	}
	if len(history) != 2 {
		t.Errorf("rejected scan appended history: %d records", len(history))
	}
}

func TestScanRebindSameCodeIsIdempotent(t *testing.T) {
	router, db := setupScanTest(t)
	token := testutil.DefaultTestToken()
	seedLotWithVariants(t, db, "P011")

	for i := 0; i < 2; i++ {
		w := testutil.DoRequest(router, "POST", "/api/v1/lots/P011/scan",
			scanBody("v1", entity.StageUretim, 40, "ABC123"), token)
		if w.Code != http.StatusOK {
			t.Fatalf("scan %d: status %d, body %s", i+1, w.Code, w.Body.String())
		}
	}

	var lot entity.ProductionLot
	db.First(&lot, "id = ?", "P011")
	_, bindings, _ := registry.Parse(lot.Details)
	if bindings["v1"].Code != "ABC123" {
		t.Errorf("binding after repeat scan: %+v", bindings)
	}
}

func TestScanQuantityBoundaries(t *testing.T) {
	router, db := setupScanTest(t)
	token := testutil.DefaultTestToken()

	// v1 target is 50; valid range is 1..50 inclusive.
	cases := []struct {
		quantity int
		wantOK   bool
	}{
		{0, false},
		{1, true},
		{50, true},
		{51, false},
	}
	for i, c := range cases {
		lotID := fmt.Sprintf("P10%d", i)
		seedLotWithVariants(t, db, lotID)

		w := testutil.DoRequest(router, "POST", "/api/v1/lots/"+lotID+"/scan",
			scanBody("v1", entity.StageUretim, c.quantity, fmt.Sprintf("Q-%d", i)), token)
		if c.wantOK && w.Code != http.StatusOK {
			t.Errorf("quantity %d: status %d, want 200; body %s", c.quantity, w.Code, w.Body.String())
		}
		if !c.wantOK {
			if w.Code != http.StatusConflict {
				t.Errorf("quantity %d: status %d, want 409", c.quantity, w.Code)
				continue
			}
			if reason := rejectionReason(t, testutil.ParseResponse(w)); reason != service.RejectQuantityOutOfRange {
				t.Errorf("quantity %d: reason %q", c.quantity, reason)
			}
		}
	}
}

func TestScanDuplicateCodeWithinLot(t *testing.T) {
	router, db := setupScanTest(t)
	token := testutil.DefaultTestToken()
	seedLotWithVariants(t, db, "P012")

	w := testutil.DoRequest(router, "POST", "/api/v1/lots/P012/scan",
		scanBody("v1", entity.StageUretim, 40, "ABC123"), token)
	if w.Code != http.StatusOK {
		t.Fatalf("first bind: status %d", w.Code)
	}

	// Same code on a second variant must be refused.
	w = testutil.DoRequest(router, "POST", "/api/v1/lots/P012/scan",
		scanBody("v2", entity.StageUretim, 20, "ABC123"), token)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate bind: status %d, body %s", w.Code, w.Body.String())
	}
	if reason := rejectionReason(t, testutil.ParseResponse(w)); reason != service.RejectDuplicateCodeLocal {
		t.Errorf("reason = %q, want DuplicateCodeLocal", reason)
	}

	var lot entity.ProductionLot
	db.First(&lot, "id = ?", "P012")
	_, bindings, _ := registry.Parse(lot.Details)
	if bindings.IsBound("v2") {
		t.Error("v2 must stay unbound after duplicate-code rejection")
	}
}

func TestScanDuplicateCodeAcrossLots(t *testing.T) {
	router, db := setupScanTest(t)
	token := testutil.DefaultTestToken()
	seedLotWithVariants(t, db, "P013")
	seedLotWithVariants(t, db, "P014")

	w := testutil.DoRequest(router, "POST", "/api/v1/lots/P013/scan",
		scanBody("v1", entity.StageUretim, 40, "GLOBAL1"), token)
	if w.Code != http.StatusOK {
		t.Fatalf("bind in first lot: status %d", w.Code)
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/lots/P014/scan",
		scanBody("v1", entity.StageUretim, 40, "GLOBAL1"), token)
	if w.Code != http.StatusConflict {
		t.Fatalf("cross-lot duplicate: status %d, body %s", w.Code, w.Body.String())
	}
	if reason := rejectionReason(t, testutil.ParseResponse(w)); reason != service.RejectDuplicateCodeGlobal {
		t.Errorf("reason = %q, want DuplicateCodeGlobal", reason)
	}
}

func TestScanWithoutVariantSelection(t *testing.T) {
	router, db := setupScanTest(t)
	token := testutil.DefaultTestToken()
	seedLotWithVariants(t, db, "P015")

	w := testutil.DoRequest(router, "POST", "/api/v1/lots/P015/scan",
		scanBody("", entity.StageUretim, 40, "ABC123"), token)
	if w.Code != http.StatusConflict {
		t.Fatalf("status %d, want 409", w.Code)
	}
	if reason := rejectionReason(t, testutil.ParseResponse(w)); reason != service.RejectNoVariantSelected {
		t.Errorf("reason = %q, want NoVariantSelected", reason)
	}

	// Unknown variant id gets the same treatment.
	w = testutil.DoRequest(router, "POST", "/api/v1/lots/P015/scan",
		scanBody("v99", entity.StageUretim, 40, "ABC123"), token)
	if w.Code != http.StatusConflict {
		t.Fatalf("unknown variant: status %d", w.Code)
	}
}

func TestScanUnknownLot(t *testing.T) {
	router, _ := setupScanTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/lots/NOPE/scan",
		scanBody("v1", entity.StageUretim, 10, "ABC123"), token)
	if w.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", w.Code)
	}
}

func TestScanBackwardStageMove(t *testing.T) {
	router, db := setupScanTest(t)
	token := testutil.DefaultTestToken()
	seedLotWithVariants(t, db, "P016")

	testutil.DoRequest(router, "POST", "/api/v1/lots/P016/scan",
		scanBody("v1", entity.StageUretim, 40, "ABC123"), token)
	testutil.DoRequest(router, "POST", "/api/v1/lots/P016/scan",
		scanBody("v1", entity.StagePaketleme, 0, "ABC123"), token)

	// Moving back to Yıkama is allowed; completion follows the target stage.
	w := testutil.DoRequest(router, "POST", "/api/v1/lots/P016/scan",
		scanBody("v1", entity.StageYikama, 0, "ABC123"), token)
	if w.Code != http.StatusOK {
		t.Fatalf("backward move: status %d, body %s", w.Code, w.Body.String())
	}

	var lot entity.ProductionLot
	db.First(&lot, "id = ?", "P016")
	if lot.Stage != entity.StageYikama || lot.Completion != 60 {
		t.Errorf("after backward move: %s %%%d, want Yıkama %%60", lot.Stage, lot.Completion)
	}
}

func TestManualStageOverride(t *testing.T) {
	router, db := setupScanTest(t)
	token := testutil.DefaultTestToken()
	seedLotWithVariants(t, db, "P017")

	// The stage endpoint needs no scan or binding at all.
	w := testutil.DoRequest(router, "PUT", "/api/v1/lots/P017/stage",
		map[string]interface{}{"durum": entity.StageKurutma}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("stage override: status %d, body %s", w.Code, w.Body.String())
	}

	var lot entity.ProductionLot
	db.First(&lot, "id = ?", "P017")
	if lot.Stage != entity.StageKurutma || lot.Completion != 80 {
		t.Errorf("after override: %s %%%d, want Kurutma %%80", lot.Stage, lot.Completion)
	}

	// Explicit completion wins over the canonical percentage.
	w = testutil.DoRequest(router, "PUT", "/api/v1/lots/P017/stage",
		map[string]interface{}{"durum": entity.StageYikama, "tamamlanma": 65}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("override with completion: status %d", w.Code)
	}
	db.First(&lot, "id = ?", "P017")
	if lot.Completion != 65 {
		t.Errorf("completion = %d, want 65", lot.Completion)
	}
}

func TestScanSessionLifecycle(t *testing.T) {
	router, db := setupScanTest(t)
	token := testutil.DefaultTestToken()
	seedLotWithVariants(t, db, "P018")

	w := testutil.DoRequest(router, "POST", "/api/v1/lots/P018/scan-sessions", nil, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("open session: status %d, body %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	sid := data["session_id"].(string)

	// Reader noise never surfaces.
	w = testutil.DoRequest(router, "POST", "/api/v1/scan-sessions/"+sid+"/decode",
		map[string]interface{}{"no_detection": "NotFoundException"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("noise report: status %d", w.Code)
	}
	if d := testutil.ParseResponse(w)["data"].(map[string]interface{}); d["warning"] != nil {
		t.Errorf("noise must not produce a warning: %+v", d)
	}

	// First decode is accepted.
	w = testutil.DoRequest(router, "POST", "/api/v1/scan-sessions/"+sid+"/decode",
		map[string]interface{}{"text": "ABC123"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("decode: status %d, body %s", w.Code, w.Body.String())
	}

	// Duplicate camera callback is refused until resume.
	w = testutil.DoRequest(router, "POST", "/api/v1/scan-sessions/"+sid+"/decode",
		map[string]interface{}{"text": "ABC123"}, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate decode: status %d", w.Code)
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/scan-sessions/"+sid+"/resume", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("resume: status %d", w.Code)
	}
	w = testutil.DoRequest(router, "POST", "/api/v1/scan-sessions/"+sid+"/decode",
		map[string]interface{}{"text": "XYZ999"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("decode after resume: status %d", w.Code)
	}

	w = testutil.DoRequest(router, "DELETE", "/api/v1/scan-sessions/"+sid, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("close: status %d", w.Code)
	}
	w = testutil.DoRequest(router, "POST", "/api/v1/scan-sessions/"+sid+"/decode",
		map[string]interface{}{"text": "LATE"}, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("decode on closed session: status %d, want 404", w.Code)
	}
}

func TestScanRequiresAuth(t *testing.T) {
	router, db := setupScanTest(t)
	seedLotWithVariants(t, db, "P019")

	w := testutil.DoRequest(router, "POST", "/api/v1/lots/P019/scan",
		scanBody("v1", entity.StageUretim, 10, "ABC123"), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", w.Code)
	}
}
