package app

import (
	"context"
	"encoding/json"
	"errors"

	"social_network_service/internal/friendship/domain"
	"social_network_service/pkg/database"
	"social_network_service/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PostEventReader kafka.Reader 的子集
type PostEventReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PostNotifier 收到 post 通過審核後通知好友
type PostNotifier interface {
	NotifyFriendPost(ctx context.Context, ev domain.PostEvent) (int, error)
}

// PostConsumer 讀取 post_events
type PostConsumer struct {
	reader   PostEventReader
	notifier PostNotifier
}

// NewPostConsumer create consumer
func NewPostConsumer(reader PostEventReader, notifier PostNotifier) *PostConsumer {
	return &PostConsumer{reader: reader, notifier: notifier}
}

// Run 直到 ctx 結束, 每筆處理完才 commit
func (c *PostConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			logger.Log.Error("fetch post event", zap.Error(err))
			return err
		}

		c.Handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Log.Warn("commit post event", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// Handle 單筆訊息, 格式錯誤或 ping 直接略過
func (c *PostConsumer) Handle(ctx context.Context, msg kafka.Message) {
	if string(msg.Key) == database.PingKey {
		return
	}

	var ev domain.PostEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		logger.Log.Warn("skip malformed post event", zap.Int64("offset", msg.Offset), zap.Error(err))
		return
	}

	sent, err := c.notifier.NotifyFriendPost(ctx, ev)
	if err != nil {
		logger.Log.Warn("notify friend post", zap.String("postID", ev.PostID), zap.Error(err))
		return
	}
	logger.Log.Debug("friend post notified", zap.String("postID", ev.PostID), zap.Int("friends", sent))
}
