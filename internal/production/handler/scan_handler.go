package handler

import (
	"errors"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/scanner"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/service"
	"github.com/gin-gonic/gin"
)

type ScanHandler struct {
	svc *service.ScanService
	hub *scanner.Hub
}

func NewScanHandler(svc *service.ScanService, hub *scanner.Hub) *ScanHandler {
	return &ScanHandler{svc: svc, hub: hub}
}

// Scan POST /lots/:id/scan handles one scan event against a lot.
func (h *ScanHandler) Scan(c *gin.Context) {
	lotID := c.Param("id")
	var input service.ScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "geçersiz istek: "+err.Error())
		return
	}

	lot, err := h.svc.HandleScan(c.Request.Context(), lotID, input, GetUserID(c))
	if err != nil {
		var rej *service.Rejection
		switch {
		case errors.As(err, &rej):
			Conflict(c, rej.Reason, rej.Message)
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "parti bulunamadı: "+lotID)
		case errors.Is(err, service.ErrStoreUnavailable):
			InternalError(c, err.Error())
		default:
			BadRequest(c, err.Error())
		}
		return
	}
	Success(c, lot)
}

// OpenSession POST /lots/:id/scan-sessions starts listening for decodes.
func (h *ScanHandler) OpenSession(c *gin.Context) {
	lotID := c.Param("id")
	s := h.hub.Open(lotID, GetUserID(c))
	Created(c, gin.H{"session_id": s.ID, "lot_id": s.LotID, "active": s.Active()})
}

type decodeRequest struct {
	Text string `json:"text"`
	// NoDetection carries the reader's non-detection message when no code
	// was decoded in the frame.
	NoDetection string `json:"no_detection"`
}

// Decode POST /scan-sessions/:sid/decode receives a reader callback.
// Non-detection noise is swallowed here; a real decode is accepted once
// per session.
func (h *ScanHandler) Decode(c *gin.Context) {
	s, ok := h.hub.Get(c.Param("sid"))
	if !ok {
		NotFound(c, "okuma oturumu bulunamadı")
		return
	}

	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "geçersiz istek: "+err.Error())
		return
	}

	if req.NoDetection != "" {
		if msg := s.ReportNoDetection(req.NoDetection); msg != "" {
			Success(c, gin.H{"accepted": false, "warning": msg})
			return
		}
		// Routine empty-frame noise, never surfaced.
		Success(c, gin.H{"accepted": false})
		return
	}

	if err := s.Submit(req.Text); err != nil {
		if errors.Is(err, scanner.ErrSessionInactive) {
			Conflict(c, "SessionInactive", "oturum şu an okuma kabul etmiyor")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, gin.H{"accepted": true, "text": req.Text})
}

// ResumeSession POST /scan-sessions/:sid/resume restarts scanning.
func (h *ScanHandler) ResumeSession(c *gin.Context) {
	s, ok := h.hub.Get(c.Param("sid"))
	if !ok {
		NotFound(c, "okuma oturumu bulunamadı")
		return
	}
	s.Resume()
	Success(c, gin.H{"session_id": s.ID, "active": true})
}

// CloseSession DELETE /scan-sessions/:sid
func (h *ScanHandler) CloseSession(c *gin.Context) {
	h.hub.Close(c.Param("sid"))
	Success(c, nil)
}
