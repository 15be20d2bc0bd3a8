package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(DefaultMaxSessions)
	ctx := context.Background()
	session := domain.NewSession("s-1", "12345678", time.Now())

	require.NoError(t, repo.Create(ctx, session))
	require.Error(t, repo.Create(ctx, session))
	require.Error(t, repo.Create(ctx, nil))
	require.Error(t, repo.Create(ctx, domain.NewSession("", "12345678", time.Now())))

	got, err := repo.Get(ctx, "s-1")
	require.NoError(t, err)
	require.Same(t, session, got)

	require.NoError(t, repo.Delete(ctx, "s-1"))
	_, err = repo.Get(ctx, "s-1")
	require.True(t, errors.Is(err, domain.ErrSessionNotFound))
	require.True(t, errors.Is(repo.Delete(ctx, "s-1"), domain.ErrSessionNotFound))
}

func TestSessionRepositoryDropsLeastRecentlyUsed(t *testing.T) {
	repo := NewSessionRepository(2)
	ctx := context.Background()

	for _, id := range []string{"s-1", "s-2"} {
		require.NoError(t, repo.Create(ctx, domain.NewSession(id, "12345678", time.Now())))
	}

	_, err := repo.Get(ctx, "s-1")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, domain.NewSession("s-3", "87654321", time.Now())))

	_, err = repo.Get(ctx, "s-2")
	require.True(t, errors.Is(err, domain.ErrSessionNotFound))
	for _, id := range []string{"s-1", "s-3"} {
		_, err := repo.Get(ctx, id)
		require.NoError(t, err, id)
	}
}
