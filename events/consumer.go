package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Handler processes one decoded order event. Returning an error leaves the
// offset uncommitted so kafka redelivers the message.
type Handler func(ctx context.Context, ev OrderEvent) error

// Consumer reads the order event topic as part of a consumer group.
type Consumer struct {
	reader *kafka.Reader
	log    zerolog.Logger
}

func NewConsumer(brokers, groupID string, log zerolog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  strings.Split(brokers, ","),
			Topic:    Topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		log: log,
	}
}

// Run consumes until ctx is cancelled. Undecodable messages are committed
// and skipped; handler failures are retried via redelivery.
func (c *Consumer) Run(ctx context.Context, handler Handler) {
	c.log.Info().Str("topic", Topic).Msg("order event consumer started")
	for {
		if ctx.Err() != nil {
			return
		}
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Warn().Err(err).Msg("error fetching order event")
			time.Sleep(time.Second)
			continue
		}

		var ev OrderEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			c.log.Error().Err(err).Int64("offset", m.Offset).Msg("dropping undecodable order event")
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				c.log.Error().Err(err).Msg("failed to commit offset")
			}
			continue
		}

		processCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = handler(processCtx, ev)
		cancel()
		if err != nil {
			c.log.Error().Err(err).Str("order_id", ev.OrderID).Msg("order event processing failed")
			continue
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.log.Error().Err(err).Msg("failed to commit offset")
		}
	}
}

// Close disconnects from the brokers.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
