package booking

import "sync"

// SessionStore keeps the active booking session per user.  One user books
// one facility at a time: opening a session for a different facility
// replaces the old one.  Sessions are transient by contract, so the store
// is a guarded in-process map, not a database.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uint64]*Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uint64]*Session)}
}

// Open returns the user's session for the facility, creating it when none
// exists and resetting it when the user switched facilities.
func (st *SessionStore) Open(userID, subScenarioID uint64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[userID]; ok && s.SubScenarioID == subScenarioID {
		return s
	}
	s := NewSession(userID, subScenarioID)
	st.sessions[userID] = s
	return s
}

// Get returns the user's active session, nil when none is open.
func (st *SessionStore) Get(userID uint64) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[userID]
}

// Close discards the user's session, e.g. after a successful submission.
func (st *SessionStore) Close(userID uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}
