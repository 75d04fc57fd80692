package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"social_network_service/internal/friendship/domain"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/logger"
	"social_network_service/pkg/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newUseCase(repo *MockFriendshipRepository, pub notify.Publisher) *FriendshipUseCase {
	logger.SetNewNop()
	uc := NewFriendshipUseCase(repo, pub)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestFriendshipUseCase_Request(t *testing.T) {
	ctx := context.Background()

	t.Run("建立 pending 並通知對方", func(t *testing.T) {
		repo := new(MockFriendshipRepository)
		pub := &recordPublisher{}
		uc := newUseCase(repo, pub)

		repo.On("FindPair", ctx, "alice", "bob").Return(nil, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(f *domain.Friendship) bool {
			return f.RequesterID == "alice" && f.RecipientID == "bob" && f.Status == domain.StatusPending && f.ID != ""
		})).Return(nil)

		f, err := uc.Request(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.Equal(t, fixedNow, f.CreatedAt)

		sent := pub.all()
		require.Len(t, sent, 1)
		assert.Equal(t, "bob", sent[0].userID)
		assert.Equal(t, notify.EventFriendRequest, sent[0].env.Event)

		var payload notify.FriendRequest
		require.NoError(t, json.Unmarshal(sent[0].env.Data, &payload))
		assert.Equal(t, f.ID, payload.RequestID)
		assert.Equal(t, "alice", payload.RequesterID)
		repo.AssertExpectations(t)
	})

	t.Run("不能邀請自己", func(t *testing.T) {
		repo := new(MockFriendshipRepository)
		uc := newUseCase(repo, &recordPublisher{})

		_, err := uc.Request(ctx, "alice", "alice")
		assert.True(t, errors.Is(err, errprocess.ErrValidation))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("缺少 recipient", func(t *testing.T) {
		uc := newUseCase(new(MockFriendshipRepository), &recordPublisher{})
		_, err := uc.Request(ctx, "alice", "  ")
		assert.True(t, errors.Is(err, errprocess.ErrValidation))
	})

	t.Run("重複邀請", func(t *testing.T) {
		repo := new(MockFriendshipRepository)
		pub := &recordPublisher{}
		uc := newUseCase(repo, pub)

		repo.On("FindPair", ctx, "alice", "bob").Return(&domain.Friendship{Status: domain.StatusRejected}, nil)

		_, err := uc.Request(ctx, "alice", "bob")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errprocess.ErrValidation))
		assert.Contains(t, err.Error(), "request already sent")
		assert.Empty(t, pub.all())
	})

	t.Run("通知失敗不影響邀請", func(t *testing.T) {
		repo := new(MockFriendshipRepository)
		uc := newUseCase(repo, &recordPublisher{err: errors.New("redis down")})

		repo.On("FindPair", ctx, "alice", "bob").Return(nil, nil)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := uc.Request(ctx, "alice", "bob")
		assert.NoError(t, err)
	})

	t.Run("store 錯誤轉為 upstream", func(t *testing.T) {
		repo := new(MockFriendshipRepository)
		uc := newUseCase(repo, &recordPublisher{})

		repo.On("FindPair", ctx, "alice", "bob").Return(nil, errors.New("timeout"))

		_, err := uc.Request(ctx, "alice", "bob")
		assert.True(t, errors.Is(err, errprocess.ErrUpstreamUnavailable))
	})
}

func TestFriendshipUseCase_AcceptReject(t *testing.T) {
	ctx := context.Background()

	t.Run("接受 pending", func(t *testing.T) {
		repo := new(MockFriendshipRepository)
		uc := newUseCase(repo, &recordPublisher{})

		want := &domain.Friendship{ID: "f-1", RequesterID: "alice", RecipientID: "bob", Status: domain.StatusAccepted}
		repo.On("Transition", ctx, "alice", "bob", domain.StatusPending, domain.StatusAccepted).Return(want, nil)

		f, err := uc.Accept(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, f.Status)
	})

	t.Run("沒有 pending 紀錄", func(t *testing.T) {
		repo := new(MockFriendshipRepository)
		uc := newUseCase(repo, &recordPublisher{})

		repo.On("Transition", ctx, "alice", "bob", domain.StatusPending, domain.StatusAccepted).
			Return(nil, errprocess.Wrap(errprocess.ErrNotFound, "friend request"))

		_, err := uc.Accept(ctx, "bob", "alice")
		assert.True(t, errors.Is(err, errprocess.ErrNotFound))
	})

	t.Run("拒絕", func(t *testing.T) {
		repo := new(MockFriendshipRepository)
		uc := newUseCase(repo, &recordPublisher{})

		repo.On("Transition", ctx, "alice", "bob", domain.StatusPending, domain.StatusRejected).
			Return(&domain.Friendship{Status: domain.StatusRejected}, nil)

		f, err := uc.Reject(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, f.Status)
	})

	t.Run("缺少 requester", func(t *testing.T) {
		uc := newUseCase(new(MockFriendshipRepository), &recordPublisher{})
		_, err := uc.Reject(ctx, "bob", "")
		assert.True(t, errors.Is(err, errprocess.ErrValidation))
	})
}

func TestFriendshipUseCase_ListAndRemove(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFriendshipRepository)
	uc := newUseCase(repo, &recordPublisher{})

	repo.On("FindAccepted", ctx, "bob").Return([]domain.Friendship{
		{RequesterID: "alice", RecipientID: "bob", Status: domain.StatusAccepted},
		{RequesterID: "bob", RecipientID: "carol", Status: domain.StatusAccepted},
	}, nil)
	repo.On("DeleteAccepted", ctx, "bob", "dave").Return(errprocess.Wrap(errprocess.ErrNotFound, "friendship"))
	repo.On("DeleteAccepted", ctx, "bob", "alice").Return(nil)

	t.Run("雙向列出好友", func(t *testing.T) {
		ids, err := uc.List(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "carol"}, ids)
	})

	t.Run("移除好友", func(t *testing.T) {
		assert.NoError(t, uc.Remove(ctx, "bob", "alice"))
	})

	t.Run("不是好友", func(t *testing.T) {
		err := uc.Remove(ctx, "bob", "dave")
		assert.True(t, errors.Is(err, errprocess.ErrNotFound))
	})

	t.Run("缺少 friendId", func(t *testing.T) {
		err := uc.Remove(ctx, "bob", "")
		assert.True(t, errors.Is(err, errprocess.ErrValidation))
	})
}

func TestFriendshipUseCase_NotifyFriendPost(t *testing.T) {
	ctx := context.Background()

	t.Run("每個好友一則通知", func(t *testing.T) {
		repo := new(MockFriendshipRepository)
		pub := &recordPublisher{}
		uc := newUseCase(repo, pub)

		repo.On("FindAccepted", ctx, "alice").Return([]domain.Friendship{
			{RequesterID: "alice", RecipientID: "bob"},
			{RequesterID: "carol", RecipientID: "alice"},
		}, nil)

		n, err := uc.NotifyFriendPost(ctx, domain.PostEvent{PostID: "p-1", AuthorID: "alice", Content: "hello", ApprovedAt: fixedNow})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		sent := pub.all()
		require.Len(t, sent, 2)
		assert.Equal(t, "bob", sent[0].userID)
		assert.Equal(t, "carol", sent[1].userID)

		var post notify.FriendPost
		require.NoError(t, json.Unmarshal(sent[0].env.Data, &post))
		assert.Equal(t, notify.EventFriendPost, sent[0].env.Event)
		assert.Equal(t, "p-1", post.PostID)
		assert.Equal(t, "alice", post.AuthorID)
	})

	t.Run("沒有作者", func(t *testing.T) {
		uc := newUseCase(new(MockFriendshipRepository), &recordPublisher{})
		_, err := uc.NotifyFriendPost(ctx, domain.PostEvent{PostID: "p-1"})
		assert.True(t, errors.Is(err, errprocess.ErrValidation))
	})
}
