package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/banco-digital/src/internal/commons"
	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/api-sage/banco-digital/src/internal/logger"
)

const sessionHeader = "X-Session-ID"
const requestIDHeader = "X-Request-ID"

func sessionID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(sessionHeader))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidFormat), errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds), errors.Is(err, domain.ErrGatewayRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTransferInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func methodNotAllowed[T any](w http.ResponseWriter, r *http.Request, start time.Time) {
	response := commons.ErrorResponse[T]("method not allowed")
	writeJSON(w, http.StatusMethodNotAllowed, response)
	logResponse(r, http.StatusMethodNotAllowed, response, start)
}

func decodeBody[T any, R any](w http.ResponseWriter, r *http.Request, start time.Time, dst *T) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[R]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return false
	}
	logRequest(r, *dst)
	return true
}

func writeResult[T any](w http.ResponseWriter, r *http.Request, start time.Time, okStatus int, response commons.Response[T], err error) {
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logError(r, err, logger.Fields{"message": response.Message})
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, okStatus, response)
	logResponse(r, okStatus, response, start)
}
