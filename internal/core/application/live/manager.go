// Package live keeps dashboards and notification panels up to date over
// long-lived connections. A session pushes a snapshot when it opens, then a
// fresh snapshot whenever one of its topics is published, until the peer goes
// away or a send fails.
package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"orderhub/internal/pkg/pubsub"
)

// ErrSessionClosed is returned by a session's send after teardown.
var ErrSessionClosed = errors.New("live session is closed")

// Conn is a bidirectional connection to one client.
type Conn interface {
	// Send writes one text message.
	Send(msg string) error
	// OnClose registers fn to run once when the peer disconnects.
	// If the connection is already closed, fn runs immediately.
	OnClose(fn func())
	Close() error
}

// Subscriber is the part of the event bus a session needs.
type Subscriber interface {
	Subscribe(topic string, handler pubsub.Handler) pubsub.Subscription
	Unsubscribe(sub pubsub.Subscription)
}

// snapshotFunc renders the message a session pushes.
type snapshotFunc func(ctx context.Context) (string, error)

// Manager runs sessions on top of a Subscriber.
type Manager struct {
	bus    Subscriber
	logger *slog.Logger
	active atomic.Int64
}

func NewManager(bus Subscriber, logger *slog.Logger) *Manager {
	return &Manager{
		bus:    bus,
		logger: logger.With("component", "live_channels"),
	}
}

// ActiveSessions returns the number of sessions not yet torn down.
func (m *Manager) ActiveSessions() int64 {
	return m.active.Load()
}

type session struct {
	manager *Manager
	channel string
	conn    Conn
	render  snapshotFunc

	writeMu sync.Mutex

	mu      sync.Mutex
	subs    []pubsub.Subscription
	closed  bool
	closing atomic.Bool
}

// serve pushes the initial snapshot, subscribes to topics and arranges teardown.
// It returns once the session is established; pushes then run on publishers' goroutines.
func (m *Manager) serve(ctx context.Context, channel string, conn Conn, topics []string, render snapshotFunc) error {
	s := &session{
		manager: m,
		channel: channel,
		conn:    conn,
		render:  render,
	}
	m.active.Add(1)

	msg, err := render(ctx)
	if err != nil {
		s.teardown()
		return err
	}
	if err = s.send(msg); err != nil {
		s.teardown()
		return err
	}

	s.mu.Lock()
	if !s.closed {
		for _, topic := range topics {
			s.subs = append(s.subs, m.bus.Subscribe(topic, s.push))
		}
	}
	s.mu.Unlock()

	conn.OnClose(s.teardown)

	m.logger.DebugContext(ctx, "session opened", "channel", channel, "topics", topics)
	return nil
}

func (s *session) push(ctx context.Context, _ pubsub.Event) error {
	if s.isClosed() {
		return nil
	}

	msg, err := s.render(ctx)
	if err != nil {
		return err
	}

	if err = s.send(msg); err != nil {
		s.teardown()
		if errors.Is(err, ErrSessionClosed) {
			return nil
		}
		return err
	}
	return nil
}

// send serializes writes; connections accept one writer at a time.
// Only writeMu is held across the network write, so teardown never waits on it.
func (s *session) send(msg string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.isClosed() {
		return ErrSessionClosed
	}
	return s.conn.Send(msg)
}

func (s *session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// teardown unsubscribes exactly the handles this session registered and closes the connection.
// Closing the connection fires its close callbacks, teardown among them; that nested call returns at once.
func (s *session) teardown() {
	if !s.closing.CompareAndSwap(false, true) {
		return
	}

	s.mu.Lock()
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		s.manager.bus.Unsubscribe(sub)
	}
	if err := s.conn.Close(); err != nil {
		s.manager.logger.Debug("close connection", "channel", s.channel, "error", err)
	}
	s.manager.active.Add(-1)
	s.manager.logger.Debug("session closed", "channel", s.channel)
}
