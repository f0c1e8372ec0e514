package chat

import "sync"

// SessionStore holds the user's conversation list, most recent first. It is
// a purely local state container; talking to the service is the
// orchestrator's job.
type SessionStore struct {
	mu       sync.RWMutex
	sessions []Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// List returns a copy of the sessions in display order.
func (s *SessionStore) List() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Replace swaps in a freshly loaded session list.
func (s *SessionStore) Replace(sessions []Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make([]Session, len(sessions))
	copy(s.sessions, sessions)
}

// InsertHead puts a newly created session at the top of the list.
func (s *SessionStore) InsertHead(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = append([]Session{sess}, s.sessions...)
}

// Remove deletes the session with the given id. Removing an id that is not
// present is a no-op.
func (s *SessionStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return
		}
	}
}

// UpdateTitle sets the title the service assigned to a session. The list
// order is not touched.
func (s *SessionStore) UpdateTitle(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions[i].Title = title
			return
		}
	}
}

func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return Session{}, false
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
