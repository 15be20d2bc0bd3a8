package repo_interfaces

import (
	"context"

	"github.com/api-sage/banco-digital/src/internal/domain"
)

// UserRepository is the account directory. Implementations hand out copies;
// Commit replaces the stored user wholesale.
type UserRepository interface {
	Find(ctx context.Context, id string) (domain.User, error)
	FindByAccountNumber(ctx context.Context, accountNumber string) (domain.User, error)
	Commit(ctx context.Context, user domain.User) (domain.User, error)
}
