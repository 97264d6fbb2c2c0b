package services

import (
	"sync"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
)

// SessionStore keeps one session per conversation id in process memory.
// The mutex only guards the map itself: two messages racing for the same
// conversation are last-write-wins, the flow assumes one message at a time
// per user.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
	}
}

// GetOrCreate returns the session for a conversation id, creating it in
// the initial state on the first message.
func (s *SessionStore) GetOrCreate(conversationID string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[conversationID]; ok {
		return session
	}

	session := &models.Session{
		ConversationID: conversationID,
		State:          models.StateAwaitingStart,
	}
	s.sessions[conversationID] = session
	return session
}

// Get returns the session for a conversation id, if one exists.
func (s *SessionStore) Get(conversationID string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[conversationID]
	return session, ok
}

// Delete removes a session. Called on every terminal state.
func (s *SessionStore) Delete(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, conversationID)
}

// Count returns the number of live sessions, for the health endpoint.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
