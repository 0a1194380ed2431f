package realtime

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Subscription is a live channel subscription. Close tears it down and stops
// the delivery goroutine.
type Subscription struct {
	pubsub *redis.PubSub
	cancel context.CancelFunc
}

func (s *Subscription) Close() {
	s.cancel()
	_ = s.pubsub.Close()
}

// Subscriber attaches handlers to change-feed channels.
type Subscriber struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewSubscriber(client *redis.Client, log zerolog.Logger) *Subscriber {
	return &Subscriber{client: client, log: log}
}

// Subscribe delivers every event published on channel to fn, in arrival
// order, on a single goroutine. Malformed payloads are logged and skipped.
func (s *Subscriber) Subscribe(ctx context.Context, channel string, fn func(Event)) *Subscription {
	subCtx, cancel := context.WithCancel(ctx)
	pubsub := s.client.Subscribe(subCtx, channel)

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					s.log.Warn().Err(err).Str("channel", channel).Msg("dropping malformed change event")
					continue
				}
				fn(ev)
			}
		}
	}()

	s.log.Debug().Str("channel", channel).Msg("subscribed to change feed")
	return &Subscription{pubsub: pubsub, cancel: cancel}
}
