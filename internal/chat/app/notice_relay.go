package app

import (
	"context"

	"social_network_service/pkg/logger"
	"social_network_service/pkg/notify"

	"go.uber.org/zap"
)

// NoticeSubscriber notify.RedisPubSub 實作
type NoticeSubscriber interface {
	Subscribe(ctx context.Context, handler notify.Handler) error
}

// relayEvents 只轉推這些事件, 其餘丟棄
var relayEvents = map[string]bool{
	notify.EventFriendRequest: true,
	notify.EventFriendPost:    true,
}

// StartNoticeRelay 其他服務發佈的通知轉推到本機的 room, 不保存
func StartNoticeRelay(ctx context.Context, sub NoticeSubscriber, pusher Pusher) error {
	return sub.Subscribe(ctx, RelayHandler(pusher))
}

// RelayHandler notify.Handler that pushes to local rooms
func RelayHandler(pusher Pusher) notify.Handler {
	return func(userID string, env notify.Envelope) {
		if !relayEvents[env.Event] {
			logger.Log.Warn("drop notice", zap.String("event", env.Event), zap.String("userID", userID))
			return
		}
		pusher.Push(userID, env)
	}
}
