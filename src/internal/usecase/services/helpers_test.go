package services_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/api-sage/banco-digital/src/internal/adapter/repository/memory"
	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/api-sage/banco-digital/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const mariaID = "12345678"
const juanID = "87654321"

type gatewayStub struct {
	calls    atomic.Int32
	submitFn func(ctx context.Context, instruction domain.TransferInstruction) (domain.GatewayResult, error)
}

func (g *gatewayStub) SubmitTransfer(ctx context.Context, instruction domain.TransferInstruction) (domain.GatewayResult, error) {
	g.calls.Add(1)
	if g.submitFn != nil {
		return g.submitFn(ctx, instruction)
	}
	return domain.GatewayResult{}, domain.ErrTransportFailure
}

func committedGateway(id string, fee string) *gatewayStub {
	return &gatewayStub{
		submitFn: func(context.Context, domain.TransferInstruction) (domain.GatewayResult, error) {
			return domain.GatewayResult{
				Kind: domain.GatewayCommitted,
				Receipt: domain.GatewayReceipt{
					TransferID:  id,
					ProcessedAt: "2024-05-01T10:00:00Z",
					Fee:         decimal.RequireFromString(fee),
					Status:      "OK",
				},
			}, nil
		},
	}
}

type fixture struct {
	users    *memory.UserRepository
	sessions *memory.SessionRepository
	gateway  *gatewayStub
	service  *services.TransferService
}

func newFixture(t *testing.T, gateway *gatewayStub, opts services.TransferOptions) fixture {
	t.Helper()

	seeded, err := memory.SeedUsers(memory.DemoUsers(), bcrypt.MinCost)
	require.NoError(t, err)
	users, err := memory.NewUserRepository(seeded...)
	require.NoError(t, err)
	sessions := memory.NewSessionRepository(memory.DefaultMaxSessions)

	return fixture{
		users:    users,
		sessions: sessions,
		gateway:  gateway,
		service:  services.NewTransferService(users, sessions, gateway, opts),
	}
}

func (f fixture) login(t *testing.T, userID string) *domain.Session {
	t.Helper()
	session := domain.NewSession("session-"+userID, userID, time.Now())
	require.NoError(t, f.sessions.Create(context.Background(), session))
	return session
}

func (f fixture) balance(t *testing.T, userID string, index int) decimal.Decimal {
	t.Helper()
	user, err := f.users.Find(context.Background(), userID)
	require.NoError(t, err)
	return user.Accounts[index].Balance
}

func requireBalance(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, got.Equal(decimal.RequireFromString(want)), "expected balance %s, got %s", want, got.StringFixed(2))
}

func nationalRequest(destination string, amount string, pin string) domain.TransferRequest {
	return domain.TransferRequest{
		DestinationAccount: destination,
		Amount:             amount,
		Concept:            "Pago de servicios",
		PIN:                pin,
	}
}
