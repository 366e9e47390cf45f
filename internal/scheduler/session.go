package scheduler

import "github.com/google/uuid"

// Session scopes timers and animations to one load of the scene. Cancelling a
// session turns every callback registered against it into a no-op.
type Session struct {
	id        uuid.UUID
	cancelled bool
}

// NewSession returns a live session with a fresh id.
func NewSession() *Session {
	return &Session{id: uuid.New()}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id.String()
}

// Cancel is idempotent.
func (s *Session) Cancel() {
	s.cancelled = true
}

// Live reports whether callbacks bound to s may still run. A nil session is
// never live.
func (s *Session) Live() bool {
	return s != nil && !s.cancelled
}
