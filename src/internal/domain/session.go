package domain

import (
	"sync"
	"sync/atomic"
	"time"
)

type View string

const (
	ViewLogin    View = "login"
	ViewOverview View = "overview"
	ViewTransfer View = "transfer"
)

const maxPendingNotifications = 20

// Session is the state of one authenticated client. It is shared by pointer;
// the processing flag is the single-flight guard for transfer submissions.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	processing atomic.Bool

	mu            sync.Mutex
	view          View
	selected      int
	notifications []Notification
}

func NewSession(id string, userID string, now time.Time) *Session {
	return &Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		view:      ViewOverview,
	}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Session) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

func (s *Session) SelectedAccount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SelectAccount does not validate index; callers check it against the user.
func (s *Session) SelectAccount(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = index
}

// BeginProcessing sets the processing flag. It reports false when the flag
// was already set.
func (s *Session) BeginProcessing() bool {
	return s.processing.CompareAndSwap(false, true)
}

func (s *Session) EndProcessing() {
	s.processing.Store(false)
}

func (s *Session) Processing() bool {
	return s.processing.Load()
}

func (s *Session) Notify(n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	if len(s.notifications) > maxPendingNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxPendingNotifications:]
	}
}

// DrainNotifications returns pending notifications oldest first and clears them.
func (s *Session) DrainNotifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notifications
	s.notifications = nil
	return out
}
