package app

import (
	"context"
	"errors"
	"testing"

	"social_network_service/internal/friendship/domain"
	"social_network_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProfileResolver_HydratePending(t *testing.T) {
	logger.SetNewNop()
	users := new(MockUserClient)
	r := NewProfileResolver(users)

	users.On("GetProfile", mock.Anything, "alice").Return(domain.UserProfile{ID: "alice", Username: "Alice"}, nil).Once()
	users.On("GetProfile", mock.Anything, "ghost").Return(domain.UserProfile{}, errors.New("not found"))

	list := []domain.PendingRequest{
		domain.NewPendingRequest(domain.Friendship{ID: "1", RequesterID: "alice", RecipientID: "bob"}),
		domain.NewPendingRequest(domain.Friendship{ID: "2", RequesterID: "alice", RecipientID: "bob"}),
		domain.NewPendingRequest(domain.Friendship{ID: "3", RequesterID: "ghost", RecipientID: "bob"}),
	}

	out := r.HydratePending(context.Background(), list)

	t.Run("同一個 request 只查一次", func(t *testing.T) {
		p, ok := out[1].Requester.Value()
		assert.True(t, ok)
		assert.Equal(t, "Alice", p.Username)
		users.AssertNumberOfCalls(t, "GetProfile", 2)
	})

	t.Run("查詢失敗保留 id", func(t *testing.T) {
		assert.False(t, out[2].Requester.IsResolved())
		assert.Equal(t, "ghost", out[2].Requester.ID())
	})
}

func TestProfileMemo_Bounded(t *testing.T) {
	ctx := WithProfileMemo(context.Background(), 1)
	m := memoFrom(ctx)

	m.put("a", domain.UserProfile{ID: "a"})
	m.put("b", domain.UserProfile{ID: "b"})

	_, okA := m.get("a")
	_, okB := m.get("b")
	assert.True(t, okA)
	assert.False(t, okB)
}
