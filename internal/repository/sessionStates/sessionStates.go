package sessionStates

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

// SessionStates holds every user's in-progress deck session, keyed by chat
// ID. Sessions are independent; the map is the only shared state.
type SessionStates struct {
	states map[int64]*domain.SessionState
	mu     sync.RWMutex
}

func NewSessionStates() *SessionStates {
	return &SessionStates{
		states: make(map[int64]*domain.SessionState),
	}
}

// GetStateByID returns the session for chatID, creating an empty one if the
// user has none yet.
func (s *SessionStates) GetStateByID(ctx context.Context, chatID int64) *domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[chatID]; !ok {
		s.states[chatID] = &domain.SessionState{}
	}
	return s.states[chatID]
}

// SetState replaces the session for chatID unconditionally (last writer
// wins; a fresh /start discards any in-flight session).
func (s *SessionStates) SetState(ctx context.Context, chatID int64, state *domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = state
	return nil
}

func (s *SessionStates) ResetUserState(ctx context.Context, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}

func (s *SessionStates) GetCurrentStatesID(ctx context.Context) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.states))
	for id, state := range s.states {
		if state != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *SessionStates) GetCorrelationID(ctx context.Context, chatID int64) string {
	state := s.GetStateByID(ctx, chatID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if state.CorrelationID == "" {
		state.CorrelationID = uuid.New().String()
	}
	return state.CorrelationID
}
