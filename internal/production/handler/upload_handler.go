package handler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadHandler stores sample/lot photos. MinIO is used when configured;
// otherwise files land on local disk under ./uploads.
type UploadHandler struct {
	minioClient *minio.Client
	bucket      string
}

func NewUploadHandler(minioClient *minio.Client, bucket string) *UploadHandler {
	return &UploadHandler{minioClient: minioClient, bucket: bucket}
}

// UploadedFile describes one stored file.
type UploadedFile struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Upload POST /upload
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		BadRequest(c, "yüklenen dosya çözümlenemedi: "+err.Error())
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		BadRequest(c, "yüklenecek dosya yok")
		return
	}

	var uploaded []UploadedFile

	for _, fileHeader := range files {
		fileID := uuid.New().String()[:32]
		savedName := fmt.Sprintf("%s_%s", fileID, fileHeader.Filename)
		contentType := fileHeader.Header.Get("Content-Type")

		src, err := fileHeader.Open()
		if err != nil {
			InternalError(c, "dosya okunamadı: "+err.Error())
			return
		}

		var url string
		if h.minioClient != nil {
			objectName := fmt.Sprintf("uploads/%d/%02d/%s", time.Now().Year(), time.Now().Month(), savedName)
			_, err = h.minioClient.PutObject(c.Request.Context(), h.bucket, objectName, src, fileHeader.Size,
				minio.PutObjectOptions{ContentType: contentType})
			src.Close()
			if err != nil {
				InternalError(c, "dosya depolanamadı: "+err.Error())
				return
			}
			url = "/" + objectName
		} else {
			now := time.Now()
			dir := fmt.Sprintf("./uploads/%d/%02d", now.Year(), now.Month())
			if err := os.MkdirAll(dir, 0755); err != nil {
				src.Close()
				InternalError(c, "yükleme dizini oluşturulamadı: "+err.Error())
				return
			}
			savePath := filepath.Join(dir, savedName)
			dst, err := os.Create(savePath)
			if err != nil {
				src.Close()
				InternalError(c, "dosya kaydedilemedi: "+err.Error())
				return
			}
			_, err = io.Copy(dst, src)
			src.Close()
			dst.Close()
			if err != nil {
				InternalError(c, "dosya yazılamadı: "+err.Error())
				return
			}
			url = fmt.Sprintf("/uploads/%d/%02d/%s", now.Year(), now.Month(), savedName)
		}

		uploaded = append(uploaded, UploadedFile{
			ID:          fileID,
			URL:         url,
			Filename:    fileHeader.Filename,
			Size:        fileHeader.Size,
			ContentType: contentType,
		})
	}

	Success(c, uploaded)
}
