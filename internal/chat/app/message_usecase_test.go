package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"social_network_service/internal/chat/domain"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestUseCase(repo *MockMessageRepository, pusher Pusher) *MessageUseCase {
	uc := NewMessageUseCase(repo, pusher, nil)
	uc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.UTC) }
	return uc
}

// 測試 MessageUseCase.Send
func TestMessageUseCase_Send(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	t.Run("寫入後推給 receiver 與 sender", func(t *testing.T) {
		repo := new(MockMessageRepository)
		pusher := &recordPusher{}
		repo.On("Insert", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.SenderID == "alice" && m.ReceiverID == "bob" && m.Content == "hi" && m.Status == domain.StatusSent
		})).Return(nil)

		msg, err := newTestUseCase(repo, pusher).Send(ctx, "alice", "bob", "hi", "")
		require.NoError(t, err)
		assert.NotEmpty(t, msg.ID)
		assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 123000000, time.UTC), msg.CreatedAt)

		calls := pusher.Calls()
		require.Len(t, calls, 2)
		assert.Equal(t, "bob", calls[0].UserID)
		assert.Equal(t, "alice", calls[1].UserID)
		assert.Equal(t, domain.EventPrivateMessage, calls[0].Env.Event)

		var ev domain.PrivateMessageEvent
		require.NoError(t, calls[0].Env.Decode(&ev))
		assert.Equal(t, msg.ID, ev.ID)
		assert.Equal(t, "hi", ev.Content)
		repo.AssertExpectations(t)
	})

	t.Run("寫入失敗不推送", func(t *testing.T) {
		repo := new(MockMessageRepository)
		pusher := &recordPusher{}
		repo.On("Insert", ctx, mock.Anything).Return(errors.New("mongo down"))

		_, err := newTestUseCase(repo, pusher).Send(ctx, "alice", "bob", "hi", "")
		assert.True(t, errors.Is(err, errprocess.ErrUpstreamUnavailable))
		assert.Empty(t, pusher.Calls())
	})

	t.Run("自己傳給自己只推一次", func(t *testing.T) {
		repo := new(MockMessageRepository)
		pusher := &recordPusher{}
		repo.On("Insert", ctx, mock.Anything).Return(nil)

		_, err := newTestUseCase(repo, pusher).Send(ctx, "alice", "alice", "note", "")
		require.NoError(t, err)
		assert.Len(t, pusher.Calls(), 1)
	})

	t.Run("送出的連線直接回送且 room 推送時跳過", func(t *testing.T) {
		repo := new(MockMessageRepository)
		pusher := &recordPusher{}
		repo.On("Insert", ctx, mock.Anything).Return(nil)
		origin := NewSession("alice", 4)

		_, err := newTestUseCase(repo, pusher).SendFrom(ctx, origin, "alice", "bob", "hi", "")
		require.NoError(t, err)

		calls := pusher.Calls()
		require.Len(t, calls, 2)
		for _, c := range calls {
			assert.Same(t, origin, c.Except)
		}
		assert.Len(t, origin.Outbound(), 1)
	})

	t.Run("驗證欄位", func(t *testing.T) {
		repo := new(MockMessageRepository)
		pusher := &recordPusher{}
		uc := newTestUseCase(repo, pusher)

		_, err := uc.Send(ctx, "alice", "", "hi", "")
		assert.True(t, errors.Is(err, errprocess.ErrValidation))
		_, err = uc.Send(ctx, "alice", "bob", "  ", "")
		assert.True(t, errors.Is(err, errprocess.ErrValidation))

		// 只有 media 也可以
		repo.On("Insert", ctx, mock.Anything).Return(nil)
		msg, err := uc.Send(ctx, "alice", "bob", "", "http://minio/x.png")
		require.NoError(t, err)
		assert.Equal(t, "http://minio/x.png", msg.Media)
	})
}

func TestMessageUseCase_History(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMessageRepository)
	msgs := []domain.Message{{ID: "m-1", SenderID: "bob", ReceiverID: "alice", Content: "hi"}}
	repo.On("FindConversation", ctx, "alice", "bob").Return(msgs, nil)

	got, err := newTestUseCase(repo, &recordPusher{}).History(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, msgs, got)

	_, err = newTestUseCase(repo, &recordPusher{}).History(ctx, "alice", "")
	assert.True(t, errors.Is(err, errprocess.ErrValidation))
}

func TestMessageUseCase_Update(t *testing.T) {
	ctx := context.Background()
	own := &domain.Message{ID: "m-1", SenderID: "alice", ReceiverID: "bob", Content: "hi"}

	t.Run("sender 可以修改", func(t *testing.T) {
		repo := new(MockMessageRepository)
		repo.On("FindByID", ctx, "m-1").Return(&domain.Message{ID: "m-1", SenderID: "alice", ReceiverID: "bob", Content: "hi"}, nil)
		repo.On("UpdateContent", ctx, "m-1", "edited").Return(nil)

		msg, err := newTestUseCase(repo, &recordPusher{}).Update(ctx, "alice", "m-1", "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", msg.Content)
		repo.AssertExpectations(t)
	})

	t.Run("receiver 不能修改", func(t *testing.T) {
		repo := new(MockMessageRepository)
		repo.On("FindByID", ctx, "m-1").Return(own, nil)

		_, err := newTestUseCase(repo, &recordPusher{}).Update(ctx, "bob", "m-1", "edited")
		assert.True(t, errors.Is(err, errprocess.ErrForbidden))
		repo.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("被同時刪除", func(t *testing.T) {
		repo := new(MockMessageRepository)
		repo.On("FindByID", ctx, "m-1").Return(own, nil)
		repo.On("UpdateContent", ctx, "m-1", "edited").Return(errprocess.Wrap(errprocess.ErrNotFound, "message m-1"))

		_, err := newTestUseCase(repo, &recordPusher{}).Update(ctx, "alice", "m-1", "edited")
		assert.True(t, errors.Is(err, errprocess.ErrNotFound))
	})
}

func TestMessageUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	own := &domain.Message{ID: "m-1", SenderID: "alice", ReceiverID: "bob"}

	repo := new(MockMessageRepository)
	repo.On("FindByID", ctx, "m-1").Return(own, nil)
	repo.On("Delete", ctx, "m-1").Return(nil)
	repo.On("FindByID", ctx, "m-2").Return(nil, errprocess.Wrap(errprocess.ErrNotFound, "message m-2"))
	uc := newTestUseCase(repo, &recordPusher{})

	assert.True(t, errors.Is(uc.Delete(ctx, "bob", "m-1"), errprocess.ErrForbidden))
	assert.NoError(t, uc.Delete(ctx, "alice", "m-1"))
	assert.True(t, errors.Is(uc.Delete(ctx, "alice", "m-2"), errprocess.ErrNotFound))
	repo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestMessageUseCase_React(t *testing.T) {
	ctx := context.Background()
	msg := &domain.Message{ID: "m-1", SenderID: "alice", ReceiverID: "bob"}
	after := &domain.Message{ID: "m-1", SenderID: "alice", ReceiverID: "bob",
		Reactions: []domain.Reaction{{UserID: "bob", Emoji: "❤️"}}}

	repo := new(MockMessageRepository)
	repo.On("FindByID", ctx, "m-1").Return(msg, nil).Once()
	repo.On("SetReaction", ctx, "m-1", domain.Reaction{UserID: "bob", Emoji: "❤️"}).Return(nil)
	repo.On("FindByID", ctx, "m-1").Return(after, nil).Once()
	uc := newTestUseCase(repo, &recordPusher{})

	got, err := uc.React(ctx, "bob", "m-1", "❤️")
	require.NoError(t, err)
	emoji, ok := got.ReactionOf("bob")
	assert.True(t, ok)
	assert.Equal(t, "❤️", emoji)

	t.Run("非參與者", func(t *testing.T) {
		repo := new(MockMessageRepository)
		repo.On("FindByID", ctx, "m-1").Return(msg, nil)
		_, err := newTestUseCase(repo, &recordPusher{}).React(ctx, "carol", "m-1", "👍")
		assert.True(t, errors.Is(err, errprocess.ErrForbidden))
	})

	t.Run("emoji 空白", func(t *testing.T) {
		_, err := newTestUseCase(new(MockMessageRepository), &recordPusher{}).React(ctx, "bob", "m-1", " ")
		assert.True(t, errors.Is(err, errprocess.ErrValidation))
	})
}
