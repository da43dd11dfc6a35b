package console

import (
	"context"
	"sync"
)

// Session is the lifetime of one open view. Requests issued through its
// context are abandoned when the session closes, and the stores drop
// whatever arrives afterwards.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	closed chan struct{}
}

func (c *Console) Open(parent context.Context) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{ctx: ctx, cancel: cancel, closed: make(chan struct{})}
}

func (s *Session) Context() context.Context {
	return s.ctx
}

// Done is closed once Close has been called.
func (s *Session) Done() <-chan struct{} {
	return s.closed
}

// Close cancels outstanding requests. It is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		s.cancel()
		close(s.closed)
	})
}
