package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/api-sage/banco-digital/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/api-sage/banco-digital/src/internal/logger"
)

var _ repo_interfaces.UserRepository = (*UserRepository)(nil)

// UserRepository is the in-memory account directory. Reads and writes go
// through copies so callers never alias stored state.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository(users ...domain.User) (*UserRepository, error) {
	r := &UserRepository{users: make(map[string]domain.User, len(users))}

	owners := make(map[string]string)
	for _, user := range users {
		if strings.TrimSpace(user.ID) == "" {
			return nil, fmt.Errorf("user id is required")
		}
		if _, exists := r.users[user.ID]; exists {
			return nil, fmt.Errorf("duplicate user id %s", user.ID)
		}
		for _, account := range user.Accounts {
			if owner, taken := owners[account.Number]; taken {
				return nil, fmt.Errorf("account %s belongs to both %s and %s", account.Number, owner, user.ID)
			}
			owners[account.Number] = user.ID
		}
		r.users[user.ID] = user.Clone()
	}

	return r, nil
}

func (r *UserRepository) Find(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}
	return user.Clone(), nil
}

func (r *UserRepository) FindByAccountNumber(_ context.Context, accountNumber string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.AccountIndex(accountNumber) >= 0 {
			return user.Clone(), nil
		}
	}
	return domain.User{}, domain.ErrRecordNotFound
}

// Commit replaces the stored user. Unknown users are rejected; the directory
// never grows after seeding.
func (r *UserRepository) Commit(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		logger.Info("user repository commit record not found", logger.Fields{
			"userId": user.ID,
		})
		return domain.User{}, domain.ErrRecordNotFound
	}

	r.users[user.ID] = user.Clone()

	logger.Info("user repository commit success", logger.Fields{
		"userId":   user.ID,
		"accounts": len(user.Accounts),
	})

	return user.Clone(), nil
}
