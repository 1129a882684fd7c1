package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.CartEventsProducer = (*CartEventsProducer)(nil)

// A CartEventsProducer publishes cart mutations to the activity
// topic, keyed by session so one session's events stay ordered.
type CartEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewCartEventsProducer(
	opts ...ProducerOpt,
) (CartEventsProducer, error) {
	const op = "NewCartEventsProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: %w", op, ErrTooFewOpts)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CartEventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return CartEventsProducer{options.cl, options.encoder}, nil
}

func (p CartEventsProducer) Close() {
	const op = "CartEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p CartEventsProducer) ProduceCartEvent(
	ctx context.Context, evt domain.CartEvent,
) error {
	const op = "CartEventsProducer.ProduceCartEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p CartEventsProducer) createRecord(
	evt domain.CartEvent,
) (*kgo.Record, error) {
	const op = "CartEventsProducer.createRecord"

	s := p.toSchema(evt)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &kgo.Record{Key: []byte(s.SessionID), Value: v}, nil
}

func (p CartEventsProducer) toSchema(
	evt domain.CartEvent,
) (s schema.CartEventV1) {
	s.SessionID = string(evt.SessionID)
	s.ItemID = evt.ItemID
	s.ProductID = evt.ProductID
	s.Action = string(evt.Action)
	s.Quantity = evt.Quantity
	s.OccurredAt = evt.OccurredAt.UnixMilli()
	return s
}
