package models

import (
	"errors"
	"strings"
)

type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// Validate only checks presence. Credential mismatches are reported by the
// auth service with a single generic message.
func (r LoginRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type LoginResponse struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	View      string `json:"view"`
}

type LogoutResponse struct {
	SessionID string `json:"sessionId"`
	View      string `json:"view"`
}
