package live_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"orderhub/internal/core/application/usecases/queries"
)

var errBrokenPipe = errors.New("broken pipe")

type fakeConn struct {
	mu       sync.Mutex
	sent     []string
	closed   bool
	closes   int
	onClose  []func()
	failSend bool

	gate    chan struct{}
	entered chan struct{}
}

func (c *fakeConn) Send(msg string) error {
	c.mu.Lock()
	gate, entered := c.gate, c.entered
	c.mu.Unlock()
	if gate != nil {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-gate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSend {
		return errBrokenPipe
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *fakeConn) OnClose(fn func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		fn()
		return
	}
	c.onClose = append(c.onClose, fn)
	c.mu.Unlock()
}

// Close fires the registered callbacks on the first call, like a real connection.
func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closes++
	c.closed = true
	callbacks := c.onClose
	c.onClose = nil
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// disconnect simulates the peer going away.
func (c *fakeConn) disconnect() {
	c.mu.Lock()
	c.closed = true
	callbacks := c.onClose
	c.onClose = nil
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func (c *fakeConn) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	copy(out, c.sent)
	return out
}

func (c *fakeConn) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}

// stall makes later sends block until release is called, like a write to a slow peer.
func (c *fakeConn) stall() (entered <-chan struct{}, release func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entered = make(chan struct{}, 1)
	c.gate = make(chan struct{})
	gate := c.gate
	return c.entered, func() { close(gate) }
}

func (c *fakeConn) breakPipe() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failSend = true
}

type fakeDashboards struct {
	mu       sync.Mutex
	snapshot queries.DashboardSnapshot
	err      error
	calls    []queries.GetDashboardSnapshotQuery
}

func (f *fakeDashboards) Handle(_ context.Context, query queries.GetDashboardSnapshotQuery) (queries.DashboardSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, query)
	return f.snapshot, f.err
}

func (f *fakeDashboards) set(snapshot queries.DashboardSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot = snapshot
}

type fakeNotifications struct {
	mu    sync.Mutex
	items []queries.NotificationResponse
}

func (f *fakeNotifications) Handle(context.Context, queries.GetRecentNotificationsQuery) ([]queries.NotificationResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items, nil
}

func (f *fakeNotifications) set(items []queries.NotificationResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
}

func waitFor(t *testing.T, done <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal(msg)
	}
}
