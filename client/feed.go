package client

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
	"github.com/zerontec/rork-nexusdelivery-sub001/store"
)

// Feed is the client end of the realtime change feed.
type Feed struct {
	sub *realtime.Subscriber
}

func NewFeed(rdb *redis.Client, log zerolog.Logger) *Feed {
	return &Feed{sub: realtime.NewSubscriber(rdb, log)}
}

func (f *Feed) SubscribeOrders(ctx context.Context, fn func(realtime.Event)) store.Subscription {
	return f.sub.Subscribe(ctx, realtime.OrdersChannel(), fn)
}

func (f *Feed) SubscribeNotifications(ctx context.Context, userID string, fn func(realtime.Event)) store.Subscription {
	return f.sub.Subscribe(ctx, realtime.NotificationsChannel(userID), fn)
}

var _ store.Realtime = (*Feed)(nil)
