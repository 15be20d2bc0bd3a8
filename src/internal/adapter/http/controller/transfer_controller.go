package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/banco-digital/src/internal/adapter/http/models"
	"github.com/api-sage/banco-digital/src/internal/usecase/service_interfaces"
)

type TransferController struct {
	service service_interfaces.TransferService
}

func NewTransferController(service service_interfaces.TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.HandlerFunc(c.transfer)
	if authMiddleware != nil {
		handler = authMiddleware(handler).ServeHTTP
	}

	mux.Handle("/transfer-funds", handler)
}

// transfer blocks until the submission settles, which includes the fallback
// settle delay when the gateway is unreachable.
func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		methodNotAllowed[models.TransferFundsResponse](w, r, start)
		return
	}

	var req models.TransferFundsRequest
	if !decodeBody[models.TransferFundsRequest, models.TransferFundsResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.TransferFunds(r.Context(), sessionID(r), req)
	writeResult(w, r, start, http.StatusOK, response, err)
}
