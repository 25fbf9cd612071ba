package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-docs-api/internal/service"
	"go-docs-api/pkg/apierror"
)

type UploadHandler struct {
	service       *service.UploadService
	maxUploadSize int64
}

func NewUploadHandler(service *service.UploadService, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{service: service, maxUploadSize: maxUploadSize}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, apierror.New("PAYLOAD_TOO_LARGE", "request body exceeds MAX_UPLOAD_SIZE", "MAX_UPLOAD_SIZE", http.StatusRequestEntityTooLarge))
			return
		}
		writeError(w, apierror.BadRequest("multipart field \"file\" is required", ""))
		return
	}
	defer file.Close()

	uploaded, err := h.service.Upload(header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, uploaded, nil)
}

func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.List()
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, files, nil)
}

func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fileName := chi.URLParam(r, "fileName")
	if fileName == "" {
		writeError(w, apierror.BadRequest("file name is required", ""))
		return
	}

	if err := h.service.Delete(fileName); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
