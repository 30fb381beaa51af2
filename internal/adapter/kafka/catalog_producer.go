package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/wnstore/storefront/internal/core/domain"
	"github.com/wnstore/storefront/internal/core/port"
	"github.com/wnstore/storefront/pkg/schema"
)

var _ port.CatalogEventsProducer = (*CatalogEventsProducer)(nil)

// A CatalogEventsProducer publishes [domain.CatalogEvent] for
// downstream consumers such as the page-revalidation worker.
type CatalogEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewCatalogEventsProducer(
	opts ...ProducerOpt,
) (CatalogEventsProducer, error) {
	const op = "NewCatalogEventsProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: %w", op, ErrTooFewOpts)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CatalogEventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return CatalogEventsProducer{options.cl, options.encoder}, nil
}

func (p CatalogEventsProducer) Close() {
	const op = "CatalogEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p CatalogEventsProducer) ProduceEvent(
	ctx context.Context, e domain.CatalogEvent,
) error {
	const op = "CatalogEventsProducer.ProduceEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p CatalogEventsProducer) createRecord(
	e domain.CatalogEvent,
) (*kgo.Record, error) {
	const op = "CatalogEventsProducer.createRecord"

	s := p.toSchema(e)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Key by product id: mutations of one product stay ordered.
	key := []byte(strconv.FormatInt(e.ProductID, 10))
	return &kgo.Record{Key: key, Value: v}, nil
}

func (CatalogEventsProducer) toSchema(
	e domain.CatalogEvent,
) (s schema.CatalogEventV1) {
	s.Action = string(e.Action)
	s.ProductID = e.ProductID
	s.OccurredAt = e.OccurredAt.UnixMilli()
	return s
}
