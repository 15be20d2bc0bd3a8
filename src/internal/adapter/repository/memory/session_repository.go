package memory

import (
	"context"
	"fmt"

	"github.com/api-sage/banco-digital/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/api-sage/banco-digital/src/internal/logger"
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultMaxSessions = 1000

var _ repo_interfaces.SessionRepository = (*SessionRepository)(nil)

// SessionRepository keeps at most maxSessions live sessions. Get refreshes
// recency; the least recently used session is dropped when full.
type SessionRepository struct {
	sessions *lru.Cache[string, *domain.Session]
}

func NewSessionRepository(maxSessions int) *SessionRepository {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}

	cache, err := lru.NewWithEvict(maxSessions, func(id string, session *domain.Session) {
		logger.Info("session repository dropped session", logger.Fields{
			"sessionId": id,
			"userId":    session.UserID,
		})
	})
	if err != nil {
		// only fails for a non-positive size
		panic("failed to create session cache: " + err.Error())
	}

	return &SessionRepository{sessions: cache}
}

func (r *SessionRepository) Create(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id is required")
	}

	if found, _ := r.sessions.ContainsOrAdd(session.ID, session); found {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	return nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := r.sessions.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	if !r.sessions.Remove(id) {
		return domain.ErrSessionNotFound
	}
	return nil
}
