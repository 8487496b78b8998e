package handler

import (
	"strconv"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/scanner"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/service"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
)

// Handlers bundles the HTTP handlers.
type Handlers struct {
	Lot     *LotHandler
	Scan    *ScanHandler
	Sample  *SampleHandler
	Product *ProductHandler
	Report  *ReportHandler
	Upload  *UploadHandler
}

func NewHandlers(svc *service.Services, minioClient *minio.Client, minioBucket string) *Handlers {
	return &Handlers{
		Lot:     NewLotHandler(svc.Lot),
		Scan:    NewScanHandler(svc.Scan, scanner.NewHub()),
		Sample:  NewSampleHandler(svc.Sample),
		Product: NewProductHandler(svc.Product),
		Report:  NewReportHandler(svc.Report),
		Upload:  NewUploadHandler(minioClient, minioBucket),
	}
}

// Response is the common response envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 200 response
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 201 response
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an app-coded error; the HTTP status is the code's first three
// digits.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict is used for typed scan rejections; the reason travels in data.
func Conflict(c *gin.Context, reason, message string) {
	c.JSON(409, Response{
		Code:    40900,
		Message: message,
		Data:    gin.H{"reason": reason},
	})
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID returns the operator id set by the JWT middleware.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination reads page/page_size query params with sane bounds.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
