package memory

import (
	"fmt"

	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/api-sage/banco-digital/src/internal/security"
	"github.com/shopspring/decimal"
)

// SeedUser carries plaintext demo credentials; they are hashed by SeedUsers.
type SeedUser struct {
	ID       string
	Name     string
	Password string
	PIN      string
	Accounts []domain.Account
}

func DemoUsers() []SeedUser {
	return []SeedUser{
		{
			ID:       "12345678",
			Name:     "María González",
			Password: "1234",
			PIN:      "4567",
			Accounts: []domain.Account{
				{Number: "0001234567890", Type: "Cuenta Corriente", Balance: decimal.RequireFromString("5000.00")},
				{Number: "0001234567891", Type: "Cuenta de Ahorros", Balance: decimal.RequireFromString("15000.00")},
			},
		},
		{
			ID:       "87654321",
			Name:     "Juan Pérez",
			Password: "5678",
			PIN:      "1234",
			Accounts: []domain.Account{
				{Number: "0009876543210", Type: "Cuenta Corriente", Balance: decimal.RequireFromString("3500.00")},
			},
		},
	}
}

func SeedUsers(seeds []SeedUser, cost int) ([]domain.User, error) {
	users := make([]domain.User, 0, len(seeds))
	for _, seed := range seeds {
		passwordHash, err := security.Hash(seed.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("seed user %s password: %w", seed.ID, err)
		}
		pinHash, err := security.Hash(seed.PIN, cost)
		if err != nil {
			return nil, fmt.Errorf("seed user %s pin: %w", seed.ID, err)
		}

		accounts := make([]domain.Account, len(seed.Accounts))
		copy(accounts, seed.Accounts)

		users = append(users, domain.User{
			ID:           seed.ID,
			Name:         seed.Name,
			PasswordHash: passwordHash,
			PinHash:      pinHash,
			Accounts:     accounts,
		})
	}

	return users, nil
}
