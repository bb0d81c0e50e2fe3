package command

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Sender is the slice of a transport connection the dispatcher needs.
type Sender interface {
	SendMessage(ctx context.Context, data []byte) error
}

// Dispatcher encodes control intents and posts them to the remote
// surface. Every send is fire-and-forget: success means delivered to
// the transport, not acknowledged by the remote end. Delivery failures
// surface to the caller and are never retried here.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) error {
	if d.sender == nil {
		return errors.New("transport not initialized")
	}
	data, err := json.Marshal(&cmd)
	if err != nil {
		return errors.Wrap(err, "failed to encode command")
	}
	if err := d.sender.SendMessage(ctx, data); err != nil {
		return errors.Wrapf(err, "failed to deliver %s command", cmd.Type)
	}
	return nil
}
