package handler

import (
	"errors"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/service"
	"github.com/gin-gonic/gin"
)

type SampleHandler struct {
	svc *service.SampleService
}

func NewSampleHandler(svc *service.SampleService) *SampleHandler {
	return &SampleHandler{svc: svc}
}

// List GET /samples
func (h *SampleHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	status := c.Query("status")

	samples, total, err := h.svc.List(c.Request.Context(), page, pageSize, status)
	if err != nil {
		InternalError(c, "numune listesi alınamadı: "+err.Error())
		return
	}
	Success(c, gin.H{"items": samples, "total": total})
}

// Get GET /samples/:id
func (h *SampleHandler) Get(c *gin.Context) {
	id := c.Param("id")
	sample, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "numune bulunamadı: "+id)
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, sample)
}

// Create POST /samples
func (h *SampleHandler) Create(c *gin.Context) {
	var req service.CreateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "geçersiz istek: "+err.Error())
		return
	}
	sample, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, sample)
}

// Update PUT /samples/:id
func (h *SampleHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "geçersiz istek: "+err.Error())
		return
	}
	sample, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "numune bulunamadı: "+id)
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, sample)
}

// Delete DELETE /samples/:id
func (h *SampleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "numune bulunamadı: "+id)
			return
		}
		InternalError(c, "numune silinemedi: "+err.Error())
		return
	}
	Success(c, nil)
}
