package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"luman/internal/httputil"
	"luman/internal/storage"
)

const (
	maxUploadSize      = 50 << 20  // 50MB
	maxVideoUploadSize = 100 << 20 // 100MB
)

// UploadHandler streams file uploads to the blob store.
type UploadHandler struct {
	blobs  *storage.BlobClient
	logger *slog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(blobs *storage.BlobClient, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		blobs:  blobs,
		logger: logger,
	}
}

// Upload stores the raw request body as a blob
// POST /api/upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	filename := r.Header.Get("X-Upload-Filename")
	if filename == "" {
		httputil.RespondError(w, http.StatusBadRequest, "X-Upload-Filename header is required")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	limit := int64(maxUploadSize)
	if strings.HasPrefix(contentType, "video/") {
		limit = maxVideoUploadSize
	}
	if r.ContentLength > limit {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	body := http.MaxBytesReader(w, r.Body, limit)
	result, err := h.blobs.Upload(r.Context(), filename, contentType, r.ContentLength, body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		handleError(w, err)
		return
	}

	h.logger.Info("file uploaded", "pathname", result.Pathname, "content_type", result.ContentType)
	httputil.RespondJSON(w, http.StatusOK, result)
}
