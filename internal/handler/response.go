package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-docs-api/internal/model"
	"go-docs-api/pkg/apierror"
)

// sentinelMappings translates domain sentinel errors into client-facing
// coded errors. Anything not listed falls through to a generic 500.
var sentinelMappings = []struct {
	sentinel error
	api      *apierror.APIError
}{
	{model.ErrUserNotFound, apierror.NotFound("User not found", "")},
	{model.ErrUsernameTaken, apierror.Conflict("Username already taken", "")},
	{model.ErrInvalidCredentials, apierror.Unauthorized("Invalid credentials")},
	{model.ErrDocumentNotFound, apierror.NotFound("Document not found", "")},
	{model.ErrFileNotFound, apierror.NotFound("File not found", "")},
	{model.ErrInvalidInput, apierror.BadRequest("Invalid input", "")},
}

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	writeEnvelope(w, status, model.APIResponse{Success: true, Data: data, Meta: meta})
}

func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeEnvelope(w, apiErr.HTTPStatus, model.APIResponse{
			Success: false,
			Error: &model.APIError{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			},
		})
		return
	}

	for _, m := range sentinelMappings {
		if errors.Is(err, m.sentinel) {
			writeEnvelope(w, m.api.HTTPStatus, model.APIResponse{
				Success: false,
				Error:   &model.APIError{Code: m.api.Code, Message: m.api.Message},
			})
			return
		}
	}

	// Unexpected error: generic body for the caller, detail to the log only.
	slog.Error("unhandled handler error", "error", err.Error())
	writeEnvelope(w, http.StatusInternalServerError, model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: "INTERNAL_ERROR", Message: "Unexpected server error"},
	})
}

func writeEnvelope(w http.ResponseWriter, status int, envelope model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope)
}
