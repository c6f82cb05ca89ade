package session

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Session carries the per-questionnaire state that used to live on an
// ambient global: the client session token, the questionnaire folder and
// the encode-suppression flag. It is passed explicitly to the codec and
// the persistence coordinator.
type Session struct {
	token    string
	folder   string
	suppress atomic.Bool
}

// New mints a fresh session with a UUIDv4 token.
func New(folder string) *Session {
	return &Session{token: uuid.NewString(), folder: folder}
}

// Restore rebuilds a session from a previously issued token.
func Restore(folder, token string) (*Session, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	return &Session{token: token, folder: folder}, nil
}

func (s *Session) Token() string { return s.token }

func (s *Session) Folder() string { return s.folder }

// BeginRestore sets the suppression flag for the duration of a bulk answer
// restore and returns the function that clears it. Live URL encoding is a
// no-op while the flag is set, so restoring answers cannot trigger a storm
// of history writes or feed back into a decode in progress.
func (s *Session) BeginRestore() func() {
	s.suppress.Store(true)
	return func() { s.suppress.Store(false) }
}

// Suppressed reports whether live encoding is currently suppressed.
func (s *Session) Suppressed() bool {
	return s.suppress.Load()
}
