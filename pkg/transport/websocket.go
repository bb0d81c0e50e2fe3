package transport

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tevino/abool"

	"golang.org/x/net/websocket"
)

// WebSocketConn is the message channel to a hosted web client running
// in an embedded web view. The web client posts `{type, ...}` envelopes
// which are forwarded verbatim to the session mapper.
type WebSocketConn struct {
	conn   *websocket.Conn
	closed *abool.AtomicBool

	callbackMu   sync.Mutex
	onMessage    func([]byte)
	onConnect    func()
	onDisconnect func()

	logger zerolog.Logger
}

func NewWebSocketConn(logger zerolog.Logger) *WebSocketConn {
	return &WebSocketConn{
		closed: abool.New(),
		logger: logger,
	}
}

// Dial connects to the web client's message endpoint and starts the
// receive loop. The url typically comes from RoomResponse.EmbedURL.
func (c *WebSocketConn) Dial(ctx context.Context, url_ string) error {
	conn, err := websocket.Dial(url_, "", url_)
	if err != nil {
		return errors.Wrap(err, "failed to dial websocket")
	}
	c.conn = conn
	go c.recv(ctx)
	c.fire(&c.onConnect)
	return nil
}

func (c *WebSocketConn) recv(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.handleClosed()
			return
		default:
			var data []byte
			if err := websocket.Message.Receive(c.conn, &data); err != nil {
				if c.closed.IsSet() {
					return
				}
				c.logger.Debug().Err(err).Msg("websocket receive failed")
				c.handleClosed()
				return
			}
			c.deliver(data)
		}
	}
}

func (c *WebSocketConn) SendMessage(ctx context.Context, data []byte) error {
	if c.conn == nil {
		return errors.New("not connected")
	}
	if c.closed.IsSet() {
		return errors.New("connection closed")
	}
	return websocket.Message.Send(c.conn, data)
}

func (c *WebSocketConn) OnMessage(f func(data []byte)) {
	c.callbackMu.Lock()
	defer c.callbackMu.Unlock()
	c.onMessage = f
}

func (c *WebSocketConn) OnConnect(f func()) {
	c.callbackMu.Lock()
	defer c.callbackMu.Unlock()
	c.onConnect = f
}

func (c *WebSocketConn) OnDisconnect(f func()) {
	c.callbackMu.Lock()
	defer c.callbackMu.Unlock()
	c.onDisconnect = f
}

func (c *WebSocketConn) Close() error {
	if c.conn == nil || !c.closed.SetToIf(false, true) {
		return nil
	}
	return c.conn.Close()
}

func (c *WebSocketConn) handleClosed() {
	if c.closed.SetToIf(false, true) {
		c.fire(&c.onDisconnect)
	}
}

func (c *WebSocketConn) deliver(data []byte) {
	c.callbackMu.Lock()
	h := c.onMessage
	c.callbackMu.Unlock()
	if h != nil {
		h(data)
	}
}

func (c *WebSocketConn) fire(slot *func()) {
	c.callbackMu.Lock()
	h := *slot
	c.callbackMu.Unlock()
	if h != nil {
		h()
	}
}
