package service_interfaces

import (
	"context"

	"github.com/api-sage/banco-digital/src/internal/adapter/http/models"
	"github.com/api-sage/banco-digital/src/internal/commons"
	"github.com/api-sage/banco-digital/src/internal/domain"
)

type TransferService interface {
	SubmitTransfer(ctx context.Context, session *domain.Session, req domain.TransferRequest) (domain.TransferOutcome, error)
	TransferFunds(ctx context.Context, sessionID string, req models.TransferFundsRequest) (commons.Response[models.TransferFundsResponse], error)
}
