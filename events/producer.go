package events

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Writer is the subset of kafka.Writer the producer needs, so tests can
// inject a fake.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes order events keyed by order ID.
type Producer struct {
	writer Writer
	log    zerolog.Logger
}

// NewProducer creates a producer writing to the order event topic.
func NewProducer(brokers string, log zerolog.Logger) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: w, log: log}
}

// NewProducerWithWriter allows injecting a test writer.
func NewProducerWithWriter(w Writer, log zerolog.Logger) *Producer {
	return &Producer{writer: w, log: log}
}

// Publish writes the event. Failures are logged and returned; callers in the
// request path treat them as best-effort and do not fail the request.
func (p *Producer) Publish(ctx context.Context, ev OrderEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to marshal order event")
		return err
	}
	msg := kafka.Message{Key: []byte(ev.OrderID), Value: value}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error().Err(err).Str("order_id", ev.OrderID).Msg("failed to publish order event")
		return err
	}
	return nil
}

// Close closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
