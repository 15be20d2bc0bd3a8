package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/banco-digital/src/internal/adapter/http/models"
	"github.com/api-sage/banco-digital/src/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/accounts":       c.overview,
		"/select-account": c.selectAccount,
		"/open-transfer":  c.openTransfer,
		"/notifications":  c.notifications,
	}
	for pattern, handler := range routes {
		if authMiddleware != nil {
			handler = authMiddleware(handler).ServeHTTP
		}
		mux.Handle(pattern, handler)
	}
}

func (c *AccountController) overview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		methodNotAllowed[models.OverviewResponse](w, r, start)
		return
	}

	response, err := c.service.Overview(r.Context(), sessionID(r))
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) selectAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		methodNotAllowed[models.OverviewResponse](w, r, start)
		return
	}

	var req models.SelectAccountRequest
	if !decodeBody[models.SelectAccountRequest, models.OverviewResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.SelectAccount(r.Context(), sessionID(r), req)
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) openTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		methodNotAllowed[models.OverviewResponse](w, r, start)
		return
	}

	response, err := c.service.OpenTransfer(r.Context(), sessionID(r))
	writeResult(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) notifications(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		methodNotAllowed[models.NotificationsResponse](w, r, start)
		return
	}

	response, err := c.service.Notifications(r.Context(), sessionID(r))
	writeResult(w, r, start, http.StatusOK, response, err)
}
