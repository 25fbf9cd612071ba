package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// Logging assigns each request an id, echoes it back in the response
// headers, and logs method, path, status and latency once the handler
// returns. Error responses also get their envelope error code attached.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()

		next.ServeHTTP(recorder, r)

		attrs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", time.Since(started).Milliseconds(),
			"client_ip", r.RemoteAddr,
		}
		if code, message := recorder.errorDetails(); code != "" {
			attrs = append(attrs, "error_code", code, "error_message", message)
		}

		switch {
		case recorder.status >= http.StatusInternalServerError:
			slog.Error("request", attrs...)
		case recorder.status >= http.StatusBadRequest:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	})
}

// statusRecorder captures the response status, plus the body for error
// responses so their envelope code can be logged.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	errorBody   bytes.Buffer
}

func (rec *statusRecorder) WriteHeader(status int) {
	if rec.wroteHeader {
		return
	}
	rec.status = status
	rec.wroteHeader = true
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status >= http.StatusBadRequest {
		rec.errorBody.Write(b)
	}
	return rec.ResponseWriter.Write(b)
}

func (rec *statusRecorder) errorDetails() (code string, message string) {
	if rec.status < http.StatusBadRequest || rec.errorBody.Len() == 0 {
		return "", ""
	}

	var envelope struct {
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.errorBody.Bytes(), &envelope); err != nil || envelope.Error == nil {
		return "", ""
	}
	return envelope.Error.Code, envelope.Error.Message
}
