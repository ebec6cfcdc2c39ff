// Package pubsub shares notification refresh signals between server instances
// over a Redis channel.
package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// LocalNotifier delivers a refresh signal to connections held by this process.
type LocalNotifier interface {
	NotifyUser(userID uint)
}

type message struct {
	UserID uint `json:"user_id"`
}

const publishTimeout = 2 * time.Second

// Relay publishes refresh signals on a Redis channel and forwards every
// received signal to the local hub, so each instance reaches the users
// connected to it.
type Relay struct {
	client  *redis.Client
	channel string
	local   LocalNotifier
	log     *zap.Logger
}

func NewRelay(client *redis.Client, channel string, local LocalNotifier, log *zap.Logger) *Relay {
	return &Relay{client: client, channel: channel, local: local, log: log}
}

// NotifyUser publishes a signal for userID. When Redis is unreachable the
// signal is still delivered to local connections.
func (r *Relay) NotifyUser(userID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := r.Publish(ctx, userID); err != nil {
		r.log.Warn("refresh publish failed, delivering locally", zap.Uint("user_id", userID), zap.Error(err))
		r.local.NotifyUser(userID)
	}
}

func (r *Relay) Publish(ctx context.Context, userID uint) error {
	b, err := json.Marshal(message{UserID: userID})
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel, string(b)).Err()
}

// Run subscribes to the channel and forwards signals until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.handlePayload(msg.Payload)
		}
	}
}

func (r *Relay) handlePayload(payload string) {
	var m message
	if err := json.Unmarshal([]byte(payload), &m); err != nil || m.UserID == 0 {
		r.log.Warn("dropping malformed refresh signal", zap.String("payload", payload))
		return
	}
	r.local.NotifyUser(m.UserID)
}
