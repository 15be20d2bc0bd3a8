package service_interfaces

import (
	"context"

	"github.com/api-sage/banco-digital/src/internal/adapter/http/models"
	"github.com/api-sage/banco-digital/src/internal/commons"
	"github.com/api-sage/banco-digital/src/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
	Logout(ctx context.Context, sessionID string) (commons.Response[models.LogoutResponse], error)
	Session(ctx context.Context, sessionID string) (*domain.Session, domain.User, error)
}
