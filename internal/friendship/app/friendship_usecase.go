package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"social_network_service/internal/friendship/domain"
	"social_network_service/internal/friendship/repository"
	"social_network_service/pkg"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/logger"
	"social_network_service/pkg/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FriendshipUseCase 好友狀態機
type FriendshipUseCase struct {
	repo      repository.FriendshipRepository
	publisher notify.Publisher
	now       func() time.Time
}

// NewFriendshipUseCase init friendship use case
func NewFriendshipUseCase(repo repository.FriendshipRepository, publisher notify.Publisher) *FriendshipUseCase {
	return &FriendshipUseCase{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Request me 對 recipientID 發出邀請, 並通知對方
func (uc *FriendshipUseCase) Request(ctx context.Context, me, recipientID string) (*domain.Friendship, error) {
	recipientID = strings.TrimSpace(recipientID)
	switch {
	case recipientID == "":
		return nil, errprocess.Wrap(errprocess.ErrValidation, "recipientId is required")
	case recipientID == me:
		return nil, errprocess.Wrap(errprocess.ErrValidation, "cannot send a request to yourself")
	}

	// 只看同方向的紀錄, rejected 也算
	existing, err := uc.repo.FindPair(ctx, me, recipientID)
	if err != nil {
		return nil, storeErr(err)
	}
	if existing != nil {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "request already sent")
	}

	f := &domain.Friendship{
		ID:          uuid.NewString(),
		RequesterID: me,
		RecipientID: recipientID,
		Status:      domain.StatusPending,
		CreatedAt:   uc.now().UTC().Truncate(time.Millisecond),
	}
	if err := uc.repo.Create(ctx, f); err != nil {
		return nil, storeErr(err)
	}

	uc.publish(ctx, recipientID, notify.EventFriendRequest, notify.FriendRequest{
		RequestID:   f.ID,
		RequesterID: f.RequesterID,
		RecipientID: f.RecipientID,
		CreatedAt:   f.CreatedAt,
	})
	return f, nil
}

// Accept 只能從 pending 轉換
func (uc *FriendshipUseCase) Accept(ctx context.Context, me, requesterID string) (*domain.Friendship, error) {
	return uc.respond(ctx, me, requesterID, domain.StatusAccepted)
}

// Reject 只能從 pending 轉換, 紀錄保留
func (uc *FriendshipUseCase) Reject(ctx context.Context, me, requesterID string) (*domain.Friendship, error) {
	return uc.respond(ctx, me, requesterID, domain.StatusRejected)
}

func (uc *FriendshipUseCase) respond(ctx context.Context, me, requesterID string, to domain.Status) (*domain.Friendship, error) {
	if requesterID == "" {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "requesterId is required")
	}
	f, err := uc.repo.Transition(ctx, requesterID, me, domain.StatusPending, to)
	if err != nil {
		return nil, storeErr(err)
	}
	return f, nil
}

// Remove 刪除已接受的好友關係
func (uc *FriendshipUseCase) Remove(ctx context.Context, me, friendID string) error {
	if friendID == "" {
		return errprocess.Wrap(errprocess.ErrValidation, "friendId is required")
	}
	return storeErr(uc.repo.DeleteAccepted(ctx, me, friendID))
}

// List 好友 id, 雙向查詢
func (uc *FriendshipUseCase) List(ctx context.Context, me string) ([]string, error) {
	edges, err := uc.repo.FindAccepted(ctx, me)
	if err != nil {
		return nil, storeErr(err)
	}
	ids := make([]string, 0, len(edges))
	for i := range edges {
		ids = append(ids, edges[i].Other(me))
	}
	// 雙方互相送過邀請都被接受時會有兩條邊
	return pkg.Unique(ids), nil
}

// Pending 別人送給 me 的邀請
func (uc *FriendshipUseCase) Pending(ctx context.Context, me string) ([]domain.Friendship, error) {
	list, err := uc.repo.FindPending(ctx, me)
	if err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}

// NotifyFriendPost 作者的每個好友都收到 friend_post, 回傳通知數
func (uc *FriendshipUseCase) NotifyFriendPost(ctx context.Context, ev domain.PostEvent) (int, error) {
	if ev.AuthorID == "" {
		return 0, errprocess.Wrap(errprocess.ErrValidation, "post event without author")
	}
	friends, err := uc.List(ctx, ev.AuthorID)
	if err != nil {
		return 0, err
	}

	payload := notify.FriendPost{
		PostID:     ev.PostID,
		AuthorID:   ev.AuthorID,
		Content:    ev.Content,
		ApprovedAt: ev.ApprovedAt,
	}
	sent := 0
	for _, friend := range friends {
		if uc.publish(ctx, friend, notify.EventFriendPost, payload) {
			sent++
		}
	}
	return sent, nil
}

// publish 通知只做即時推送, 失敗只記錄
func (uc *FriendshipUseCase) publish(ctx context.Context, userID, event string, data interface{}) bool {
	env, err := notify.NewEnvelope(event, data)
	if err == nil {
		err = uc.publisher.Publish(ctx, userID, env)
	}
	if err != nil {
		logger.Log.Warn("publish notice", zap.String("event", event), zap.String("userID", userID), zap.Error(err))
		return false
	}
	return true
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{errprocess.ErrNotFound, errprocess.ErrValidation, errprocess.ErrForbidden} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "friendship store: %v", err)
}
