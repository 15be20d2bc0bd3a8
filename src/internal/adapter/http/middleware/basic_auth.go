package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/api-sage/banco-digital/src/internal/commons"
	"github.com/api-sage/banco-digital/src/internal/logger"
)

const authRealm = `Basic realm="banco-digital"`

// BasicAuth admits requests carrying the channel credentials. An unconfigured
// channel rejects everything.
func BasicAuth(channelID, channelKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields := logger.Fields{
				"method":    r.Method,
				"path":      r.URL.Path,
				"requestId": r.Header.Get("X-Request-ID"),
			}

			if channelID == "" || channelKey == "" {
				logger.Error("channel auth rejected request, channel credentials not configured", nil, fields)
				writeError(w, http.StatusInternalServerError, "channel authentication is not configured")
				return
			}

			id, key, ok := r.BasicAuth()
			if !ok {
				fields["credentials"] = "missing"
			} else if !secureEqual(id, channelID) || !secureEqual(key, channelKey) {
				fields["credentials"] = "invalid"
				ok = false
			}
			if !ok {
				logger.Warn("channel auth rejected request", fields)
				w.Header().Set("WWW-Authenticate", authRealm)
				writeError(w, http.StatusUnauthorized, "unauthorized channel")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(commons.ErrorResponse[any](message))
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
