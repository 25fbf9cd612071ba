package middleware

import (
	"net/http"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// Timeout bounds handler execution time. Responses that time out carry
// the same JSON envelope as every other middleware rejection.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	body := `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"Request timed out"}}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, body)
	}
}
