package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"social_network_service/internal/friendship/domain"
	"social_network_service/pkg/logger"
	"social_network_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFriendshipApp(repo *MockFriendshipRepository, users *MockUserClient) *fiber.App {
	logger.SetNewNop()
	h := NewFriendshipHandler(NewFriendshipUseCase(repo, &recordPublisher{}), NewProfileResolver(users))

	app := fiber.New()
	g := app.Group("/friendships", func(c *fiber.Ctx) error {
		c.Locals(middlewares.TokenUserID, c.Get("X-Test-User"))
		return c.Next()
	})
	g.Post("/request", h.Request)
	g.Post("/reject", h.Reject)
	g.Delete("/remove", h.Remove)
	g.Get("/pending", h.Pending)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, user, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)
	resp, err := app.Test(req)
	require.NoError(t, err)
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func TestFriendshipHandler_Pending(t *testing.T) {
	repo := new(MockFriendshipRepository)
	users := new(MockUserClient)
	app := newFriendshipApp(repo, users)

	repo.On("FindPending", mock.Anything, "bob").Return([]domain.Friendship{
		{ID: "f-1", RequesterID: "alice", RecipientID: "bob", Status: domain.StatusPending},
	}, nil)
	users.On("GetProfile", mock.Anything, "alice").Return(domain.UserProfile{ID: "alice", Username: "Alice"}, nil)

	t.Run("預設只有 id", func(t *testing.T) {
		status, body := call(t, app, "GET", "/friendships/pending", "bob", "")
		require.Equal(t, fiber.StatusOK, status)

		var raw []map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &raw))
		require.Len(t, raw, 1)
		assert.JSONEq(t, `"alice"`, string(raw[0]["requester"]))
		users.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})

	t.Run("hydrate 時回傳 profile", func(t *testing.T) {
		status, body := call(t, app, "GET", "/friendships/pending?hydrate=true", "bob", "")
		require.Equal(t, fiber.StatusOK, status)

		var list []domain.PendingRequest
		require.NoError(t, json.Unmarshal(body, &list))
		require.Len(t, list, 1)
		p, ok := list[0].Requester.Value()
		require.True(t, ok)
		assert.Equal(t, "Alice", p.Username)
		assert.Equal(t, "alice", list[0].Requester.ID())
	})
}

func TestFriendshipHandler_Errors(t *testing.T) {
	repo := new(MockFriendshipRepository)
	app := newFriendshipApp(repo, new(MockUserClient))

	repo.On("Transition", mock.Anything, "carol", "bob", domain.StatusPending, domain.StatusRejected).
		Return(nil, context.DeadlineExceeded)

	t.Run("body 格式錯誤", func(t *testing.T) {
		status, _ := call(t, app, "POST", "/friendships/request", "alice", "{bad")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("邀請自己", func(t *testing.T) {
		status, body := call(t, app, "POST", "/friendships/request", "alice", `{"recipientId":"alice"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, string(body), "error")
	})

	t.Run("store 無回應", func(t *testing.T) {
		status, _ := call(t, app, "POST", "/friendships/reject", "bob", `{"requesterId":"carol"}`)
		assert.Equal(t, fiber.StatusBadGateway, status)
	})

	t.Run("移除缺少 friendId", func(t *testing.T) {
		status, _ := call(t, app, "DELETE", "/friendships/remove", "bob", `{}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}
