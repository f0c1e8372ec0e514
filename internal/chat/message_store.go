package chat

import "sync"

// MessageStore holds the transcript of the session currently on screen. The
// store is bound to at most one session at a time; appends carry the id of
// the session they were produced for, so a response that resolves after the
// user switched away is discarded instead of applied.
type MessageStore struct {
	mu        sync.RWMutex
	sessionID string
	messages  []Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

// SessionID returns the id of the session the store currently represents,
// or "" when no session is bound.
func (s *MessageStore) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// Messages returns a copy of the transcript in append order.
func (s *MessageStore) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Replace rebinds the store to sessionID and swaps the transcript wholesale.
func (s *MessageStore) Replace(sessionID string, messages []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionID = sessionID
	s.messages = make([]Message, len(messages))
	copy(s.messages, messages)
}

// AppendIfCurrent appends msg only when the store is still bound to
// sessionID. It reports whether the append was applied.
func (s *MessageStore) AppendIfCurrent(sessionID string, msg Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionID != sessionID {
		return false
	}
	s.messages = append(s.messages, msg)
	return true
}

// Clear unbinds the store and empties the transcript.
func (s *MessageStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionID = ""
	s.messages = nil
}

func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
