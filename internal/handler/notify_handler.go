package handler

import (
	"net/http"

	"go-docs-api/internal/service"
)

type NotifyHandler struct {
	service *service.NotifyService
}

func NewNotifyHandler(service *service.NotifyService) *NotifyHandler {
	return &NotifyHandler{service: service}
}

// Relay forwards the request's query parameters to the configured webhook.
func (h *NotifyHandler) Relay(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.Relay(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"delivered": true, "response": response}, nil)
}
