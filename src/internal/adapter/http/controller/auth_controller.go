package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/banco-digital/src/internal/adapter/http/models"
	"github.com/api-sage/banco-digital/src/internal/usecase/service_interfaces"
)

type AuthController struct {
	service service_interfaces.AuthService
}

func NewAuthController(service service_interfaces.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (c *AuthController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	loginHandler := http.HandlerFunc(c.login)
	logoutHandler := http.HandlerFunc(c.logout)
	if authMiddleware != nil {
		loginHandler = authMiddleware(loginHandler).ServeHTTP
		logoutHandler = authMiddleware(logoutHandler).ServeHTTP
	}
	mux.Handle("/login", loginHandler)
	mux.Handle("/logout", logoutHandler)
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		methodNotAllowed[models.LoginResponse](w, r, start)
		return
	}

	var req models.LoginRequest
	if !decodeBody[models.LoginRequest, models.LoginResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Login(r.Context(), req)
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		methodNotAllowed[models.LogoutResponse](w, r, start)
		return
	}

	response, err := c.service.Logout(r.Context(), sessionID(r))
	writeResult(w, r, start, http.StatusOK, response, err)
}
