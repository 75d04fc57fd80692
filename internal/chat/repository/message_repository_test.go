//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"social_network_service/internal/chat/domain"
	"social_network_service/pkg/database"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/logger"
	testtool "social_network_service/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupMongo(t *testing.T) MessageRepository {
	t.Helper()
	ctx := context.Background()
	logger.SetNewNop()

	container, host, port, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	db, err := database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    fmt.Sprintf("mongodb://%s:%s", host, port),
		RetryCount:    5,
		RetryInterval: time.Second,
	}, "chat_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(ctx) })

	require.NoError(t, EnsureIndexes(ctx, db.Database))
	return NewMongoMessageRepository(db.Database)
}

func newMessage(id, from, to, content string, at time.Time) *domain.Message {
	return &domain.Message{
		ID: id, SenderID: from, ReceiverID: to, Content: content,
		Status: domain.StatusSent, Reactions: []domain.Reaction{}, CreatedAt: at,
	}
}

func TestMessageRepository(t *testing.T) {
	repo := setupMongo(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.Insert(ctx, newMessage("m-1", "alice", "bob", "hi", base)))
	require.NoError(t, repo.Insert(ctx, newMessage("m-2", "bob", "alice", "hey", base.Add(time.Second))))
	require.NoError(t, repo.Insert(ctx, newMessage("m-3", "alice", "carol", "other", base.Add(2*time.Second))))

	t.Run("對話雙向一致", func(t *testing.T) {
		ab, err := repo.FindConversation(ctx, "alice", "bob")
		require.NoError(t, err)
		ba, err := repo.FindConversation(ctx, "bob", "alice")
		require.NoError(t, err)

		require.Len(t, ab, 2)
		assert.Equal(t, ab, ba)
		assert.Equal(t, "m-1", ab[0].ID)
		assert.Equal(t, "m-2", ab[1].ID)
	})

	t.Run("reaction 取代", func(t *testing.T) {
		require.NoError(t, repo.SetReaction(ctx, "m-1", domain.Reaction{UserID: "bob", Emoji: "👍"}))
		require.NoError(t, repo.SetReaction(ctx, "m-1", domain.Reaction{UserID: "alice", Emoji: "😀"}))
		require.NoError(t, repo.SetReaction(ctx, "m-1", domain.Reaction{UserID: "bob", Emoji: "❤️"}))

		msg, err := repo.FindByID(ctx, "m-1")
		require.NoError(t, err)
		require.Len(t, msg.Reactions, 2)
		emoji, ok := msg.ReactionOf("bob")
		assert.True(t, ok)
		assert.Equal(t, "❤️", emoji)
		// 取代後仍在原本的位置
		assert.Equal(t, []domain.Reaction{{UserID: "bob", Emoji: "❤️"}, {UserID: "alice", Emoji: "😀"}}, msg.Reactions)
	})

	t.Run("更新與刪除", func(t *testing.T) {
		require.NoError(t, repo.UpdateContent(ctx, "m-2", "edited"))
		msg, err := repo.FindByID(ctx, "m-2")
		require.NoError(t, err)
		assert.Equal(t, "edited", msg.Content)

		require.NoError(t, repo.Delete(ctx, "m-2"))
		err = repo.Delete(ctx, "m-2")
		assert.True(t, errors.Is(err, errprocess.ErrNotFound))
		err = repo.UpdateContent(ctx, "m-2", "again")
		assert.True(t, errors.Is(err, errprocess.ErrNotFound))

		ab, err := repo.FindConversation(ctx, "alice", "bob")
		require.NoError(t, err)
		require.Len(t, ab, 1)
		assert.Equal(t, "m-1", ab[0].ID)
	})
}
