package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/idcapture/internal/controller"
	"github.com/lehigh-university-libraries/idcapture/internal/form"
	"github.com/lehigh-university-libraries/idcapture/internal/models"
)

// Session binds one controller to the form that reviews its results
type Session struct {
	ID         string
	CreatedAt  time.Time
	Controller *controller.Controller
	Form       *form.ResultForm
}

// Snapshot returns the JSON view of the session
func (s *Session) Snapshot() models.Session {
	return models.Session{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		State:     s.Controller.State(),
		Form:      s.Form.Snapshot(),
	}
}

type SessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
	}
}

func (s *SessionStore) Get(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

// List returns all sessions, oldest first
func (s *SessionStore) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Session, 0, len(s.sessions))
	for _, v := range s.sessions {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Delete removes a session and reports whether it existed
func (s *SessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return exists
}
