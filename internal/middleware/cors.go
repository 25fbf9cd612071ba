package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows browser clients on the configured origins. An empty list
// falls back to allowing any origin, which suits local development.
func CORS(origins []string) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:         3600,
		// Credentialed CORS with a wildcard origin is rejected by
		// browsers; auth travels in the Authorization header instead.
		AllowCredentials: false,
	}
	if len(options.AllowedOrigins) == 0 {
		options.AllowedOrigins = []string{"*"}
	}

	return cors.New(options).Handler
}
