package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookkeeper/internal/config"
	apperrors "bookkeeper/internal/errors"
)

// allowedReceiptExtensions maps accepted receipt file extensions to their
// content types.
var allowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// ReceiptHandler handles receipt file uploads and downloads.
type ReceiptHandler struct {
	uploadDir string
	maxBytes  int64
}

// NewReceiptHandler creates a ReceiptHandler using the configured upload
// directory and size limit.
func NewReceiptHandler(cfg *config.Config) *ReceiptHandler {
	return &ReceiptHandler{
		uploadDir: cfg.UploadDir,
		maxBytes:  cfg.MaxReceiptMB * 1024 * 1024,
	}
}

// ReceiptResponse represents the stored receipt's public URL
type ReceiptResponse struct {
	URL string `json:"url"`
}

// UploadReceipt stores a receipt file
// @Summary     Upload a receipt
// @Description Upload a receipt image or PDF; returns the URL it is served at for use as a receipt_url
// @Tags        receipts
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "Receipt file (JPG, PNG, WEBP, or PDF, max size configurable)"
// @Success     201 {object} ReceiptResponse "Receipt stored"
// @Failure     400 {object} ErrorResponse "Unsupported file type or file too large"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receipts [post]
func (h *ReceiptHandler) UploadReceipt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}

	if file.Size > h.maxBytes {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrFileTooLarge,
			fmt.Sprintf("File exceeds the %d MB limit", h.maxBytes/(1024*1024))))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedReceiptExtensions[ext]; !ok {
		respondWithError(c, apperrors.ErrUnsupportedFileType)
		return
	}

	now := time.Now()
	relDir := path.Join(
		fmt.Sprintf("%d", userID),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())))
	dir := filepath.Join(h.uploadDir, filepath.FromSlash(relDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	// Random name avoids collisions and strips user-supplied path parts
	name := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, ReceiptResponse{URL: "/uploads/" + path.Join(relDir, name)})
}
