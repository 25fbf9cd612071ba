package middleware

import (
	"encoding/json"
	"net/http"

	"go-docs-api/internal/model"
)

// writeJSONError emits the failure envelope used by middleware-level
// rejections, before any handler has run.
func writeJSONError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
