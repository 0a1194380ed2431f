package realtime

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Publisher pushes change events onto the feed. The feed is best-effort: a
// failed publish is logged and dropped, never bubbled back into the request
// that caused the mutation.
type Publisher struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewPublisher(client *redis.Client, log zerolog.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

// OrderChanged publishes a change event for the orders table.
func (p *Publisher) OrderChanged(ctx context.Context, eventType string, newRow, oldRow interface{}) {
	p.publish(ctx, OrdersChannel(), Event{
		EventType: eventType,
		Table:     "orders",
		New:       marshalRow(newRow),
		Old:       marshalRow(oldRow),
	})
}

// NotificationChanged publishes a change event on the recipient's channel.
func (p *Publisher) NotificationChanged(ctx context.Context, userID, eventType string, newRow, oldRow interface{}) {
	p.publish(ctx, NotificationsChannel(userID), Event{
		EventType: eventType,
		Table:     "notifications",
		New:       marshalRow(newRow),
		Old:       marshalRow(oldRow),
	})
}

func (p *Publisher) publish(ctx context.Context, channel string, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Str("channel", channel).Msg("failed to marshal change event")
		return
	}
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		p.log.Error().Err(err).Str("channel", channel).Msg("failed to publish change event")
	}
}

func marshalRow(row interface{}) json.RawMessage {
	if row == nil {
		return nil
	}
	data, err := json.Marshal(row)
	if err != nil {
		return nil
	}
	return data
}
