package fedi_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedigo/pkg/fedi"
)

// scriptedSource plays back a fixed sequence of frames, then fails with
// errDisconnect so the session sees a dropped connection.
type scriptedSource struct {
	mu     sync.Mutex
	frames []fedi.EventFrame
	index  int
	closed bool
}

var errDisconnect = errors.New("connection lost")

func (s *scriptedSource) Next() (*fedi.EventFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.index >= len(s.frames) {
		return nil, errDisconnect
	}

	frame := s.frames[s.index]
	s.index++

	return &frame, nil
}

func (s *scriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}

// blockingSource emits nothing and blocks until closed.
type blockingSource struct {
	done chan struct{}
	once sync.Once
}

func newBlockingSource() *blockingSource {
	return &blockingSource{done: make(chan struct{})}
}

func (s *blockingSource) Next() (*fedi.EventFrame, error) {
	<-s.done

	return nil, errDisconnect
}

func (s *blockingSource) Close() error {
	s.once.Do(func() { close(s.done) })

	return nil
}

// immediateBackOff removes the reconnect delay so tests run fast.
func immediateBackOff() backoff.BackOff {
	return backoff.NewConstantBackOff(time.Millisecond)
}

func collectFrames(session *fedi.StreamSession, event string) func() []fedi.EventFrame {
	var (
		mu     sync.Mutex
		frames []fedi.EventFrame
	)

	session.On(event, func(frame fedi.EventFrame) {
		mu.Lock()
		frames = append(frames, frame)
		mu.Unlock()
	})

	return func() []fedi.EventFrame {
		mu.Lock()
		defer mu.Unlock()

		return append([]fedi.EventFrame(nil), frames...)
	}
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	require.Eventually(t, condition, 5*time.Second, 5*time.Millisecond)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestStreamSession(t *testing.T) {
	t.Parallel()

	t.Run("dispatches frames in order to matching handlers", func(t *testing.T) {
		t.Parallel()

		source := &scriptedSource{frames: []fedi.EventFrame{
			{Name: "update", Payload: "1"},
			{Name: "delete", Payload: "2"},
			{Name: "update", Payload: "3"},
		}}

		connects := 0
		opener := fedi.StreamOpenerFunc(func(ctx context.Context) (fedi.FrameSource, error) {
			connects++
			if connects == 1 {
				return source, nil
			}

			return newBlockingSource(), nil
		})

		session := fedi.NewStreamSession(opener, fedi.WithReconnectBackOff(immediateBackOff))
		updates := collectFrames(session, "update")
		deletes := collectFrames(session, "delete")

		require.NoError(t, session.Connect(context.Background()))

		defer session.Close()

		waitFor(t, func() bool { return len(updates()) == 2 && len(deletes()) == 1 })
		assert.Equal(t, "1", updates()[0].Payload)
		assert.Equal(t, "3", updates()[1].Payload)
		assert.Equal(t, "2", deletes()[0].Payload)
	})

	t.Run("frames without a matching handler are dropped", func(t *testing.T) {
		t.Parallel()

		source := &scriptedSource{frames: []fedi.EventFrame{
			{Name: "filters_changed", Payload: ""},
			{Name: "update", Payload: "after"},
		}}

		opener := fedi.StreamOpenerFunc(func(ctx context.Context) (fedi.FrameSource, error) {
			return source, nil
		})

		session := fedi.NewStreamSession(opener, fedi.WithReconnectBackOff(immediateBackOff))
		updates := collectFrames(session, "update")

		require.NoError(t, session.Connect(context.Background()))

		defer session.Close()

		waitFor(t, func() bool { return len(updates()) == 1 })
		assert.Equal(t, "after", updates()[0].Payload)
	})

	t.Run("initial connect failure closes the session", func(t *testing.T) {
		t.Parallel()

		errRefused := errors.New("connection refused")
		opener := fedi.StreamOpenerFunc(func(ctx context.Context) (fedi.FrameSource, error) {
			return nil, errRefused
		})

		session := fedi.NewStreamSession(opener)

		err := session.Connect(context.Background())
		require.ErrorIs(t, err, errRefused)
		assert.Equal(t, fedi.StateClosed, session.State())

		// A closed session refuses to connect again.
		require.ErrorIs(t, session.Connect(context.Background()), fedi.ErrSessionClosed)
	})

	t.Run("second connect is rejected", func(t *testing.T) {
		t.Parallel()

		opener := fedi.StreamOpenerFunc(func(ctx context.Context) (fedi.FrameSource, error) {
			return newBlockingSource(), nil
		})

		session := fedi.NewStreamSession(opener)
		require.NoError(t, session.Connect(context.Background()))

		defer session.Close()

		require.ErrorIs(t, session.Connect(context.Background()), fedi.ErrSessionAlreadyStarted)
	})

	t.Run("reconnects after a dropped connection", func(t *testing.T) {
		t.Parallel()

		var (
			mu       sync.Mutex
			connects int
		)

		opener := fedi.StreamOpenerFunc(func(ctx context.Context) (fedi.FrameSource, error) {
			mu.Lock()
			connects++
			attempt := connects
			mu.Unlock()

			switch attempt {
			case 1:
				return &scriptedSource{frames: []fedi.EventFrame{{Name: "update", Payload: "before drop"}}}, nil
			case 2:
				// One failed attempt inside the reconnect loop.
				return nil, errors.New("still down")
			default:
				return &scriptedSource{frames: []fedi.EventFrame{{Name: "update", Payload: "after drop"}}}, nil
			}
		})

		session := fedi.NewStreamSession(opener, fedi.WithReconnectBackOff(immediateBackOff))
		updates := collectFrames(session, "update")

		require.NoError(t, session.Connect(context.Background()))

		defer session.Close()

		waitFor(t, func() bool { return len(updates()) >= 2 })
		assert.Equal(t, "before drop", updates()[0].Payload)
		assert.Equal(t, "after drop", updates()[1].Payload)
	})

	t.Run("close is idempotent and stops dispatch", func(t *testing.T) {
		t.Parallel()

		opener := fedi.StreamOpenerFunc(func(ctx context.Context) (fedi.FrameSource, error) {
			return newBlockingSource(), nil
		})

		session := fedi.NewStreamSession(opener)
		require.NoError(t, session.Connect(context.Background()))

		session.Close()
		session.Close()
		assert.Equal(t, fedi.StateClosed, session.State())
	})

	t.Run("close from inside a handler", func(t *testing.T) {
		t.Parallel()

		source := &scriptedSource{frames: []fedi.EventFrame{
			{Name: "update", Payload: "first"},
			{Name: "update", Payload: "second"},
		}}

		opener := fedi.StreamOpenerFunc(func(ctx context.Context) (fedi.FrameSource, error) {
			return source, nil
		})

		session := fedi.NewStreamSession(opener, fedi.WithReconnectBackOff(immediateBackOff))

		var (
			mu   sync.Mutex
			seen []string
		)

		session.On("update", func(frame fedi.EventFrame) {
			mu.Lock()
			seen = append(seen, frame.Payload)
			mu.Unlock()

			session.Close()
		})

		require.NoError(t, session.Connect(context.Background()))

		waitFor(t, func() bool { return session.State() == fedi.StateClosed })

		// Nothing is dispatched after Close, even frames already decoded.
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"first"}, seen)
	})

	t.Run("close during reconnect stops retrying", func(t *testing.T) {
		t.Parallel()

		var (
			mu       sync.Mutex
			connects int
		)

		opener := fedi.StreamOpenerFunc(func(ctx context.Context) (fedi.FrameSource, error) {
			mu.Lock()
			connects++
			attempt := connects
			mu.Unlock()

			if attempt == 1 {
				// Drop immediately to push the session into reconnecting.
				return &scriptedSource{}, nil
			}

			return nil, errors.New("still down")
		})

		session := fedi.NewStreamSession(opener, fedi.WithReconnectBackOff(func() backoff.BackOff {
			return backoff.NewConstantBackOff(10 * time.Millisecond)
		}))

		require.NoError(t, session.Connect(context.Background()))

		waitFor(t, func() bool { return session.State() == fedi.StateReconnecting })
		session.Close()

		assert.Equal(t, fedi.StateClosed, session.State())

		mu.Lock()
		attempts := connects
		mu.Unlock()

		// Any in-flight attempt may finish, but retrying stops.
		time.Sleep(100 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		assert.LessOrEqual(t, connects, attempts+1)
	})
}

func TestConnectionState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "connecting", fedi.StateConnecting.String())
	assert.Equal(t, "open", fedi.StateOpen.String())
	assert.Equal(t, "reconnecting", fedi.StateReconnecting.String())
	assert.Equal(t, "closed", fedi.StateClosed.String())
	assert.Equal(t, "unknown", fedi.ConnectionState(99).String())
}
