package http

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// wsConn adapts a gorilla connection to live.Conn. Writes are serialized and
// the close callbacks run exactly once, on whichever side closes first.
type wsConn struct {
	ws *websocket.Conn

	writeMu sync.Mutex

	mu      sync.Mutex
	closed  bool
	onClose []func()
}

func newWSConn(ws *websocket.Conn) *wsConn {
	ws.SetReadLimit(maxMessageSize)
	return &wsConn{ws: ws}
}

func (c *wsConn) Send(msg string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, []byte(msg))
}

func (c *wsConn) OnClose(fn func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		fn()
		return
	}
	c.onClose = append(c.onClose, fn)
	c.mu.Unlock()
}

func (c *wsConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	callbacks := c.onClose
	c.onClose = nil
	c.mu.Unlock()

	c.writeMu.Lock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()

	err := c.ws.Close()
	for _, fn := range callbacks {
		fn()
	}
	return err
}

// reject tells the peer why it is refused, then closes.
func (c *wsConn) reject(reason string) {
	_ = c.Send(reason)
	_ = c.Close()
}

// readLoop discards client messages until the peer goes away, then closes.
// Reading is what surfaces close frames and broken connections.
func (c *wsConn) readLoop() {
	defer c.Close()
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}
