// Package notify carries order and stock events to whoever is listening:
// connected dashboards and, when configured, a RabbitMQ exchange.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	OrderCreated   = "order.created"
	OrderCompleted = "order.completed"
	OrderCancelled = "order.cancelled"
	StockLow       = "stock.low"
)

type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func NewEvent(typ string, payload any) Event {
	return Event{ID: uuid.New(), Type: typ, OccurredAt: time.Now(), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
