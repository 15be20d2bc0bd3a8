package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS lets the browser client call the API. Preflight requests are answered
// here and never reach BasicAuth.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Session-ID", "X-Request-ID"}),
	)
}
