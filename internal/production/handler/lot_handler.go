package handler

import (
	"errors"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/service"
	"github.com/gin-gonic/gin"
)

type LotHandler struct {
	svc *service.LotService
}

func NewLotHandler(svc *service.LotService) *LotHandler {
	return &LotHandler{svc: svc}
}

// List GET /lots
func (h *LotHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	stage := c.Query("stage")

	lots, total, err := h.svc.List(c.Request.Context(), page, pageSize, stage)
	if err != nil {
		InternalError(c, "parti listesi alınamadı: "+err.Error())
		return
	}
	Success(c, gin.H{"items": lots, "total": total})
}

// Get GET /lots/:id
func (h *LotHandler) Get(c *gin.Context) {
	id := c.Param("id")
	view, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "parti bulunamadı: "+id)
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, view)
}

// Create POST /lots
func (h *LotHandler) Create(c *gin.Context) {
	var req service.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "geçersiz istek: "+err.Error())
		return
	}
	lot, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, lot)
}

// Update PUT /lots/:id
func (h *LotHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "geçersiz istek: "+err.Error())
		return
	}
	lot, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "parti bulunamadı: "+id)
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, lot)
}

// UpdateStage PUT /lots/:id/stage is the manual correction endpoint. It
// bypasses scan checks on purpose.
func (h *LotHandler) UpdateStage(c *gin.Context) {
	id := c.Param("id")
	var req service.StageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "geçersiz istek: "+err.Error())
		return
	}
	lot, err := h.svc.UpdateStage(c.Request.Context(), id, &req, GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "parti bulunamadı: "+id)
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, lot)
}

// Delete DELETE /lots/:id
func (h *LotHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "parti bulunamadı: "+id)
			return
		}
		InternalError(c, "parti silinemedi: "+err.Error())
		return
	}
	Success(c, nil)
}

// History GET /lots/:id/history
func (h *LotHandler) History(c *gin.Context) {
	id := c.Param("id")
	logs, err := h.svc.History(c.Request.Context(), id, 100)
	if err != nil {
		InternalError(c, "işlem geçmişi alınamadı: "+err.Error())
		return
	}
	Success(c, gin.H{"items": logs})
}
