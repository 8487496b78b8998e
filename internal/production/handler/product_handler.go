package handler

import (
	"errors"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/repository"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/service"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List GET /products
func (h *ProductHandler) List(c *gin.Context) {
	specs, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, "ürün listesi alınamadı: "+err.Error())
		return
	}
	Success(c, gin.H{"items": specs})
}

// Get GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id := c.Param("id")
	spec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "ürün bulunamadı: "+id)
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, spec)
}

// Create POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "geçersiz istek: "+err.Error())
		return
	}
	spec, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, spec)
}

// Update PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateProductSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "geçersiz istek: "+err.Error())
		return
	}
	spec, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "ürün bulunamadı: "+id)
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, spec)
}

// Delete DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "ürün bulunamadı: "+id)
			return
		}
		InternalError(c, "ürün silinemedi: "+err.Error())
		return
	}
	Success(c, nil)
}
