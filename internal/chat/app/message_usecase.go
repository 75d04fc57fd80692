package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"social_network_service/internal/chat/domain"
	"social_network_service/internal/chat/repository"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/logger"
	"social_network_service/pkg/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageUseCase 訊息的寫入, 查詢與即時推送
type MessageUseCase struct {
	msgRepo repository.MessageRepository
	pusher  Pusher
	metrics *Metrics
	now     func() time.Time
}

// NewMessageUseCase init message use case
func NewMessageUseCase(msgRepo repository.MessageRepository, pusher Pusher, metrics *Metrics) *MessageUseCase {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &MessageUseCase{
		msgRepo: msgRepo,
		pusher:  pusher,
		metrics: metrics,
		now:     time.Now,
	}
}

// Send 先寫入, 成功後推給 receiver 的 room 並回送 sender 的 room
// 寫入失敗時不推送
func (uc *MessageUseCase) Send(ctx context.Context, senderID, receiverID, content, media string) (*domain.Message, error) {
	return uc.SendFrom(ctx, nil, senderID, receiverID, content, media)
}

// SendFrom origin 為送出訊息的連線, 不論是否 join 過都直接回送一次
func (uc *MessageUseCase) SendFrom(ctx context.Context, origin *Session, senderID, receiverID, content, media string) (*domain.Message, error) {
	msg, err := uc.Append(ctx, senderID, receiverID, content, media)
	if err != nil {
		return nil, err
	}

	env, err := notify.NewEnvelope(domain.EventPrivateMessage, msg.Event())
	if err != nil {
		// 訊息已寫入, 只是無法即時推送
		logger.Log.Error("build private_message", zap.String("messageID", msg.ID), zap.Error(err))
		return msg, nil
	}
	uc.pusher.PushExcept(msg.ReceiverID, env, origin)
	if msg.SenderID != msg.ReceiverID {
		uc.pusher.PushExcept(msg.SenderID, env, origin)
	}
	if origin != nil && !origin.EnqueueEvent(env) && !origin.Closed() {
		uc.metrics.SlowConsumers.Inc()
		origin.Close()
	}
	return msg, nil
}

// Append 寫入一則訊息
func (uc *MessageUseCase) Append(ctx context.Context, senderID, receiverID, content, media string) (*domain.Message, error) {
	receiverID = strings.TrimSpace(receiverID)
	media = strings.TrimSpace(media)
	switch {
	case senderID == "":
		return nil, errprocess.Wrap(errprocess.ErrUnauthorized, "missing sender")
	case receiverID == "":
		return nil, errprocess.Wrap(errprocess.ErrValidation, "receiverId is required")
	case strings.TrimSpace(content) == "" && media == "":
		return nil, errprocess.Wrap(errprocess.ErrValidation, "content or media is required")
	}

	msg := &domain.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Media:      media,
		Status:     domain.StatusSent,
		Reactions:  []domain.Reaction{},
		// mongo 只保存到毫秒
		CreatedAt: uc.now().UTC().Truncate(time.Millisecond),
	}
	if err := uc.msgRepo.Insert(ctx, msg); err != nil {
		uc.metrics.Messages.WithLabelValues("append", "error").Inc()
		return nil, storeErr(err)
	}
	uc.metrics.Messages.WithLabelValues("append", "ok").Inc()
	return msg, nil
}

// History caller 與 otherUserID 之間的所有訊息
func (uc *MessageUseCase) History(ctx context.Context, callerID, otherUserID string) ([]domain.Message, error) {
	if otherUserID == "" {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "otherUserId is required")
	}
	msgs, err := uc.msgRepo.FindConversation(ctx, callerID, otherUserID)
	if err != nil {
		return nil, storeErr(err)
	}
	return msgs, nil
}

// Update 只有 sender 可以修改內容
func (uc *MessageUseCase) Update(ctx context.Context, callerID, messageID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "content is required")
	}
	msg, err := uc.ownMessage(ctx, callerID, messageID, "edit")
	if err != nil {
		return nil, err
	}
	if err := uc.msgRepo.UpdateContent(ctx, messageID, content); err != nil {
		return nil, storeErr(err)
	}
	msg.Content = content
	return msg, nil
}

// Delete 只有 sender 可以刪除
func (uc *MessageUseCase) Delete(ctx context.Context, callerID, messageID string) error {
	if _, err := uc.ownMessage(ctx, callerID, messageID, "delete"); err != nil {
		return err
	}
	if err := uc.msgRepo.Delete(ctx, messageID); err != nil {
		return storeErr(err)
	}
	uc.metrics.Messages.WithLabelValues("delete", "ok").Inc()
	return nil
}

// React sender 或 receiver 設定自己的 emoji, 重複設定會取代
func (uc *MessageUseCase) React(ctx context.Context, callerID, messageID, emoji string) (*domain.Message, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "emoji is required")
	}

	msg, err := uc.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !msg.Participant(callerID) {
		return nil, errprocess.Wrap(errprocess.ErrForbidden, "only participants can react")
	}

	if err := uc.msgRepo.SetReaction(ctx, messageID, domain.Reaction{UserID: callerID, Emoji: emoji}); err != nil {
		return nil, storeErr(err)
	}
	updated, err := uc.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, storeErr(err)
	}
	return updated, nil
}

func (uc *MessageUseCase) ownMessage(ctx context.Context, callerID, messageID, op string) (*domain.Message, error) {
	msg, err := uc.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, storeErr(err)
	}
	if msg.SenderID != callerID {
		return nil, errprocess.Wrap(errprocess.ErrForbidden, "only the sender can %s a message", op)
	}
	return msg, nil
}

// storeErr 已分類的錯誤原樣返回, 其餘視為 store 無法使用
func storeErr(err error) error {
	for _, kind := range []error{errprocess.ErrNotFound, errprocess.ErrForbidden, errprocess.ErrValidation} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "message store: %v", err)
}
