package handler

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	paymentapp "github.com/socialboost/backend/internal/application/payment"
	"github.com/socialboost/backend/internal/infrastructure/config"
	"github.com/socialboost/backend/internal/interfaces/http/dto"
)

// UploadHandler accepts payment screenshot uploads and stores them in object
// storage. The returned URL goes into the screenshotUrl field of a claim.
type UploadHandler struct {
	BaseHandler
	storage paymentapp.ObjectStorageService
	cfg     config.UploadConfig
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(storage paymentapp.ObjectStorageService, cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{storage: storage, cfg: cfg}
}

// RegisterRoutes registers upload routes on the given group
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/screenshots", h.UploadScreenshot)
}

// ScreenshotResponse carries the stored screenshot location
type ScreenshotResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// UploadScreenshot stores a payment screenshot (multipart field "file")
func (h *UploadHandler) UploadScreenshot(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file is required in the \"file\" form field")
		return
	}

	if fileHeader.Size > h.cfg.MaxSize {
		h.Error(c, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE",
			fmt.Sprintf("Screenshot exceeds the %d byte limit", h.cfg.MaxSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxSize+1))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if int64(len(data)) > h.cfg.MaxSize {
		h.Error(c, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE",
			fmt.Sprintf("Screenshot exceeds the %d byte limit", h.cfg.MaxSize))
		return
	}

	// Sniff the actual content instead of trusting the client header
	contentType := http.DetectContentType(data)
	if !h.isAllowed(contentType) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation,
			fmt.Sprintf("Content type %s is not accepted; use one of %s",
				contentType, strings.Join(h.cfg.ContentTypes, ", ")))
		return
	}

	key := "screenshots/" + uuid.NewString() + extensionFor(contentType, fileHeader.Filename)
	if err := h.storage.Upload(c.Request.Context(), key, data, contentType); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ScreenshotResponse{
		URL: h.storage.ObjectURL(key),
		Key: key,
	})
}

func (h *UploadHandler) isAllowed(contentType string) bool {
	for _, allowed := range h.cfg.ContentTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

func extensionFor(contentType, filename string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	}
	if ext := path.Ext(filename); ext != "" {
		return strings.ToLower(ext)
	}
	return ""
}
