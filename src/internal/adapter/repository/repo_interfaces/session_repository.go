package repo_interfaces

import (
	"context"

	"github.com/api-sage/banco-digital/src/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
