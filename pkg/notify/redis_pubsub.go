package notify

import (
	"context"
	"encoding/json"

	"social_network_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Publisher send notice to a user
type Publisher interface {
	Publish(ctx context.Context, userID string, env Envelope) error
}

// Handler 收到通知時呼叫
type Handler func(userID string, env Envelope)

// RedisPubSub definition redis pub/sub
type RedisPubSub struct {
	client *redis.Client
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{client: client}
}

// Publish 將 envelope 序列化後，發布到 notify:user:<userID>
func (r *RedisPubSub) Publish(ctx context.Context, userID string, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, Channel(userID), data).Err()
}

// Subscribe 以 pattern 訂閱所有 user channel, ctx 結束時關閉訂閱
func (r *RedisPubSub) Subscribe(ctx context.Context, handler Handler) error {
	sub := r.client.PSubscribe(ctx, ChannelPattern)
	// 確認訂閱建立
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}
				Dispatch(m.Channel, []byte(m.Payload), handler)
			case <-ctx.Done():
				logger.Log.Info("notify subscribe close", zap.String("pattern", ChannelPattern))
				return
			}
		}
	}()
	return nil
}

// Dispatch decode one redis payload and call handler
func Dispatch(channel string, payload []byte, handler Handler) bool {
	userID, ok := UserFromChannel(channel)
	if !ok {
		return false
	}
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil || env.Event == "" {
		logger.Log.Warn("drop malformed notice", zap.String("channel", channel), zap.Error(err))
		return false
	}
	handler(userID, env)
	return true
}
