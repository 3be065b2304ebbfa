package conversation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Store holds the ordered message log and busy flag of one browser session.
// The log is append-only and insertion order is chronological order. Every
// mutation is written through to the persister; a persistence failure is
// logged and the in-memory log stays authoritative for the session.
type Store struct {
	mu        sync.Mutex
	sessionID string
	messages  []Message
	busy      bool
	persister Persister
}

// NewStore creates the store for sessionID, loading any history the
// persister has for it (a reload within the same session).
func NewStore(ctx context.Context, sessionID string, persister Persister) (*Store, error) {
	s := &Store{
		sessionID: sessionID,
		persister: persister,
	}

	saved, err := persister.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		saved = nil
	}
	s.messages = saved

	return s, nil
}

func (s *Store) SessionID() string {
	return s.sessionID
}

// Append adds a message to the end of the log and writes the log through.
func (s *Store) Append(ctx context.Context, role Role, content string) {
	s.mu.Lock()
	s.messages = append(s.messages, Message{Role: role, Content: content})
	snapshot := make([]Message, len(s.messages))
	copy(snapshot, s.messages)
	s.mu.Unlock()

	if err := s.persister.Save(ctx, s.sessionID, snapshot); err != nil {
		slog.Warn("failed to persist conversation", "session", s.sessionID, "error", err)
	}
}

// Messages returns a copy of the ordered log.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Acquire flips the busy flag to true and reports whether it succeeded.
// It fails while another request is outstanding, enforcing the at-most-one
// in-flight discipline per session.
func (s *Store) Acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Store) SetBusy(busy bool) {
	s.mu.Lock()
	s.busy = busy
	s.mu.Unlock()
}

func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Clear wipes the session log, in memory and in the persister.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()

	if err := s.persister.Delete(ctx, s.sessionID); err != nil {
		slog.Warn("failed to clear persisted conversation", "session", s.sessionID, "error", err)
	}
}
