package notification

import (
	"context"

	"quickcourt/utils"

	"go.uber.org/zap"
)

// Notifier pushes an event with its payload to every subscriber of rooms.
type Notifier interface {
	Publish(ctx context.Context, event string, payload interface{}, rooms ...string) error
}

// Envelope is the wire shape of every pushed message.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Fanout publishes to several notifiers. A failing notifier is logged and
// does not stop the others.
type Fanout []Notifier

func (f Fanout) Publish(ctx context.Context, event string, payload interface{}, rooms ...string) error {
	var firstErr error
	for _, n := range f {
		if n == nil {
			continue
		}
		if err := n.Publish(ctx, event, payload, rooms...); err != nil {
			utils.GetLogger().Warn("notification publish failed", zap.String("event", event), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, interface{}, ...string) error { return nil }
