package transport

import (
	"context"
)

// Conn is a bidirectional message channel to the remote classroom
// surface (an embedded web view or a media client). Inbound messages
// are raw JSON envelopes for the session mapper; outbound messages come
// from the command dispatcher.
type Conn interface {
	SendMessage(ctx context.Context, data []byte) error
	OnMessage(f func(data []byte))
	OnConnect(f func())
	OnDisconnect(f func())
	Close() error
}
