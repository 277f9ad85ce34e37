package http

import (
	"io"
	"mime"
	"net/http"
	"path"

	"rental-tracker-backend/internal/logger"
	"rental-tracker-backend/internal/service"

	"github.com/gorilla/mux"
)

type AttachmentHandler struct {
	rentalSvc service.RentalService
}

func NewAttachmentHandler(rentalSvc service.RentalService) *AttachmentHandler {
	return &AttachmentHandler{rentalSvc: rentalSvc}
}

// DownloadAttachment streams a stored receipt.
func (h *AttachmentHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	rc, err := h.rentalSvc.OpenAttachment(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		logger.Warn("Failed to stream attachment", "key", key, "error", err)
	}
}

func RegisterAttachmentRoutes(router *mux.Router, h *AttachmentHandler) {
	router.HandleFunc("/uploads/{key:.+}", h.DownloadAttachment).Methods(http.MethodGet).Name("DownloadAttachment")
}
