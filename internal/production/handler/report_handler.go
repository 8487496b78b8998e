package handler

import (
	"fmt"
	"time"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/service"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Dashboard GET /reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	data, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		InternalError(c, "pano verileri alınamadı: "+err.Error())
		return
	}
	Success(c, data)
}

// ExportLots GET /reports/lots/export streams an xlsx workbook.
func (h *ReportHandler) ExportLots(c *gin.Context) {
	f, err := h.svc.ExportLots(c.Request.Context())
	if err != nil {
		InternalError(c, "rapor oluşturulamadı: "+err.Error())
		return
	}

	filename := fmt.Sprintf("partiler_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "rapor gönderilemedi: "+err.Error())
	}
}
