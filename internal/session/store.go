package session

import "sync"

// Store maps a user id to that user's session. Get reports false when the user
// has no session.
type Store interface {
	Get(userID int64) (*Session, bool)
	Set(userID int64, s *Session)
	Delete(userID int64)
}

// MemoryStore keeps sessions for the process lifetime.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (st *MemoryStore) Get(userID int64) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[userID]
	return s, ok
}

func (st *MemoryStore) Set(userID int64, s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sessions[userID] = s
}

func (st *MemoryStore) Delete(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.sessions, userID)
}

func (st *MemoryStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return len(st.sessions)
}
