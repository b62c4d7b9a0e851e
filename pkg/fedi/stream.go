package fedi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ConnectionState is the lifecycle stage of one streaming session. Exactly
// one StreamSession owns its state; external callers read it but never set
// it.
type ConnectionState int32

const (
	// StateConnecting is the state before and during the initial
	// connection attempt.
	StateConnecting ConnectionState = iota

	// StateOpen means frames are being decoded and dispatched.
	StateOpen

	// StateReconnecting means the connection dropped and the session is
	// re-establishing it.
	StateReconnecting

	// StateClosed is terminal: no reconnection, no further dispatch.
	StateClosed
)

// String implements fmt.Stringer.
func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// FrameSource yields decoded frames from one live connection. The SSE
// transport and the WebSocket transport both satisfy it.
type FrameSource interface {
	Next() (*EventFrame, error)
	Close() error
}

// StreamOpener establishes one live connection and returns its frame
// source. It is invoked once on Connect and once per reconnect attempt, so
// any configured credential is re-attached on every attempt.
type StreamOpener interface {
	OpenFrameSource(ctx context.Context) (FrameSource, error)
}

// StreamOpenerFunc adapts a function to the StreamOpener interface.
type StreamOpenerFunc func(ctx context.Context) (FrameSource, error)

// OpenFrameSource implements StreamOpener.
func (f StreamOpenerFunc) OpenFrameSource(ctx context.Context) (FrameSource, error) {
	return f(ctx)
}

// StreamHandler is invoked once per matching decoded frame, in frame
// arrival order.
type StreamHandler func(EventFrame)

// StreamOption configures a StreamSession.
type StreamOption func(*StreamSession)

// WithStreamLogger attaches a logger to the session.
func WithStreamLogger(logger Logger) StreamOption {
	return func(s *StreamSession) {
		s.logger = logger
	}
}

// WithReconnectBackOff overrides the reconnect backoff policy. The factory
// is called once per disconnect so each reconnect cycle starts fresh.
func WithReconnectBackOff(factory func() backoff.BackOff) StreamOption {
	return func(s *StreamSession) {
		s.newBackOff = factory
	}
}

// StreamSession owns one live streaming connection: it drives the frame
// source, fans decoded frames out to named-event subscribers, and manages
// reconnection. Dispatch is strictly in arrival order from a single read
// loop, so delivery is ordered and at-most-once; frames in flight during a
// disconnect are dropped, never replayed.
type StreamSession struct {
	opener     StreamOpener
	logger     Logger
	newBackOff func() backoff.BackOff

	mu       sync.Mutex
	state    ConnectionState
	handlers map[string][]StreamHandler
	source   FrameSource
	started  bool
	closed   bool
	cancel   context.CancelFunc
}

// NewStreamSession creates a session that connects through opener.
func NewStreamSession(opener StreamOpener, opts ...StreamOption) *StreamSession {
	session := &StreamSession{
		opener:   opener,
		handlers: make(map[string][]StreamHandler),
		state:    StateConnecting,
		newBackOff: func() backoff.BackOff {
			policy := backoff.NewExponentialBackOff()
			policy.MaxInterval = 30 * time.Second
			policy.MaxElapsedTime = 0 // retry until Close

			return policy
		},
	}

	for _, opt := range opts {
		opt(session)
	}

	return session
}

// On registers a handler for the named event. Multiple handlers for the
// same name are invoked in registration order.
func (s *StreamSession) On(event string, handler StreamHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers[event] = append(s.handlers[event], handler)
}

// State returns the session's current connection state.
func (s *StreamSession) State() ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Connect establishes the connection and starts the read loop. A failure
// here is surfaced synchronously as a classified error; failures during
// later reconnects are not — they only delay the next open state.
func (s *StreamSession) Connect(ctx context.Context) error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		return ErrSessionClosed
	}

	if s.started {
		s.mu.Unlock()

		return ErrSessionAlreadyStarted
	}

	s.started = true
	s.state = StateConnecting
	s.mu.Unlock()

	source, err := s.opener.OpenFrameSource(ctx)
	if err != nil {
		s.mu.Lock()
		s.state = StateClosed
		s.closed = true
		s.mu.Unlock()

		return fmt.Errorf("connecting stream: %w", err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()

	if s.closed {
		// Close raced the connect; drop the fresh connection.
		s.mu.Unlock()
		cancel()
		_ = source.Close()

		return ErrSessionClosed
	}

	s.source = source
	s.cancel = cancel
	s.state = StateOpen
	s.mu.Unlock()

	go s.run(loopCtx)

	return nil
}

// Close terminally shuts the session down. It is idempotent and safe to
// call from within a handler. No frames are dispatched after Close, even
// ones already decoded.
func (s *StreamSession) Close() {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		return
	}

	s.closed = true
	s.state = StateClosed
	source := s.source
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if source != nil {
		_ = source.Close()
	}
}

// run is the single decode/dispatch loop. Handler execution for one frame
// completes before the next frame is decoded.
func (s *StreamSession) run(ctx context.Context) {
	for {
		s.mu.Lock()
		source := s.source
		closed := s.closed
		s.mu.Unlock()

		if closed {
			return
		}

		frame, err := source.Next()
		if err != nil {
			_ = source.Close()

			if s.isClosed() {
				return
			}

			s.debugf("stream disconnected", map[string]interface{}{"error": err.Error()})

			if !s.reconnect(ctx) {
				return
			}

			continue
		}

		s.dispatch(*frame)
	}
}

// dispatch fans one frame out to its subscribers. The handler list is
// copied so a handler may call Close or On without deadlocking.
func (s *StreamSession) dispatch(frame EventFrame) {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		return
	}

	registered := s.handlers[frame.Name]
	handlers := make([]StreamHandler, len(registered))
	copy(handlers, registered)
	s.mu.Unlock()

	for _, handler := range handlers {
		if s.isClosed() {
			return
		}

		handler(frame)
	}
}

// reconnect re-establishes the connection, retrying with backoff until it
// succeeds or the session is closed. Returns false when closed.
func (s *StreamSession) reconnect(ctx context.Context) bool {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		return false
	}

	s.state = StateReconnecting
	s.mu.Unlock()

	policy := s.newBackOff()

	for {
		wait := policy.NextBackOff()
		if wait == backoff.Stop {
			policy = s.newBackOff()

			continue
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}

		source, err := s.opener.OpenFrameSource(ctx)
		if err != nil {
			s.debugf("stream reconnect failed", map[string]interface{}{"error": err.Error()})

			continue
		}

		s.mu.Lock()

		if s.closed {
			s.mu.Unlock()
			_ = source.Close()

			return false
		}

		s.source = source
		s.state = StateOpen
		s.mu.Unlock()

		s.debugf("stream reconnected", nil)

		return true
	}
}

func (s *StreamSession) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

func (s *StreamSession) debugf(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}
