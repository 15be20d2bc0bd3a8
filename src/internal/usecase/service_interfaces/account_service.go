package service_interfaces

import (
	"context"

	"github.com/api-sage/banco-digital/src/internal/adapter/http/models"
	"github.com/api-sage/banco-digital/src/internal/commons"
)

type AccountService interface {
	Overview(ctx context.Context, sessionID string) (commons.Response[models.OverviewResponse], error)
	SelectAccount(ctx context.Context, sessionID string, req models.SelectAccountRequest) (commons.Response[models.OverviewResponse], error)
	OpenTransfer(ctx context.Context, sessionID string) (commons.Response[models.OverviewResponse], error)
	Notifications(ctx context.Context, sessionID string) (commons.Response[models.NotificationsResponse], error)
}
