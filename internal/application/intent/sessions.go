package intent

import "sync"

// Message is one turn in a conversation session.
type Message struct {
	Role    string
	Content string
}

// SessionStore keeps per-session conversation history in memory for the
// lifetime of the process.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]Message
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]Message)}
}

// Append adds a message to the session and returns the new history
// length. A length of 1 marks the first query of the session.
func (s *SessionStore) Append(sessionID string, msg Message) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
	return len(s.sessions[sessionID])
}

// History returns a copy of the session's messages.
func (s *SessionStore) History(sessionID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.sessions[sessionID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
