package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"social_network_service/internal/chat/domain"
	"social_network_service/pkg/config"
	"social_network_service/pkg/notify"

	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newWSHandler(t *testing.T, repo *MockMessageRepository) (*ChatWebsocketHandler, *Hub) {
	t.Helper()
	hub := startHub(t, nil)
	uc := NewMessageUseCase(repo, hub, nil)
	return NewChatWebsocketHandler(hub, uc, nil, config.RealtimeConfig{SendQueue: 8}), hub
}

func event(t *testing.T, name string, data interface{}) []byte {
	t.Helper()
	env, err := notify.NewEnvelope(name, data)
	require.NoError(t, err)
	b, err := json.Marshal(env)
	require.NoError(t, err)
	return b
}

func TestHandleEvent_Join(t *testing.T) {
	h, hub := newWSHandler(t, new(MockMessageRepository))
	ctx := context.Background()

	t.Run("沒有帶 userId 加入自己的 room", func(t *testing.T) {
		s := NewSession("alice", 8)
		h.HandleEvent(ctx, s, []byte(`{"event":"join"}`))

		env := recv(t, s)
		assert.Equal(t, domain.EventJoined, env.Event)
		assert.Equal(t, 1, hub.Online("alice"))
	})

	t.Run("字串形式", func(t *testing.T) {
		s := NewSession("bob", 8)
		h.HandleEvent(ctx, s, []byte(`{"event":"join","data":"bob"}`))
		assert.Equal(t, domain.EventJoined, recv(t, s).Event)
		assert.Equal(t, 1, hub.Online("bob"))
	})

	t.Run("不能加入別人的 room", func(t *testing.T) {
		s := NewSession("mallory", 8)
		h.HandleEvent(ctx, s, event(t, domain.EventJoin, domain.JoinRequest{UserID: "alice"}))

		env := recv(t, s)
		assert.Equal(t, domain.EventError, env.Event)
		assert.Equal(t, 1, hub.Online("alice"))
		assert.Equal(t, 0, hub.Online("mallory"))
	})
}

func TestHandleEvent_PrivateMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("推給 receiver 的每個連線並回送 sender", func(t *testing.T) {
		repo := new(MockMessageRepository)
		repo.On("Insert", ctx, mock.Anything).Return(nil)
		h, hub := newWSHandler(t, repo)

		alice := NewSession("alice", 8)
		bob1, bob2 := NewSession("bob", 8), NewSession("bob", 8)
		carol := NewSession("carol", 8)
		for _, s := range []*Session{alice, bob1, bob2, carol} {
			h.HandleEvent(ctx, s, []byte(`{"event":"join"}`))
			recv(t, s)
		}

		h.HandleEvent(ctx, alice, event(t, domain.EventPrivateMessage, domain.PrivateMessageRequest{
			SenderID: "alice", ReceiverID: "bob", Content: "hi",
		}))

		for _, s := range []*Session{bob1, bob2, alice} {
			env := recv(t, s)
			assert.Equal(t, domain.EventPrivateMessage, env.Event)
			var ev domain.PrivateMessageEvent
			require.NoError(t, env.Decode(&ev))
			assert.Equal(t, "alice", ev.SenderID)
			assert.Equal(t, "bob", ev.ReceiverID)
			assert.Equal(t, "hi", ev.Content)
		}
		hub.Online("carol")
		assert.Len(t, carol.Outbound(), 0)
	})

	t.Run("未 join 的 sender 也會收到回送", func(t *testing.T) {
		repo := new(MockMessageRepository)
		repo.On("Insert", ctx, mock.Anything).Return(nil)
		h, hub := newWSHandler(t, repo)

		alice, bob := NewSession("alice", 8), NewSession("bob", 8)
		h.HandleEvent(ctx, bob, []byte(`{"event":"join"}`))
		recv(t, bob)

		h.HandleEvent(ctx, alice, event(t, domain.EventPrivateMessage, domain.PrivateMessageRequest{ReceiverID: "bob", Content: "hi"}))

		for _, s := range []*Session{bob, alice} {
			env := recv(t, s)
			assert.Equal(t, domain.EventPrivateMessage, env.Event)
		}
		hub.Online("alice")
		assert.Len(t, alice.Outbound(), 0)
	})

	t.Run("已 join 的 sender 只收到一次, 其他分頁從 room 收到", func(t *testing.T) {
		repo := new(MockMessageRepository)
		repo.On("Insert", ctx, mock.Anything).Return(nil)
		h, hub := newWSHandler(t, repo)

		tab1, tab2, bob := NewSession("alice", 8), NewSession("alice", 8), NewSession("bob", 8)
		for _, s := range []*Session{tab1, tab2, bob} {
			h.HandleEvent(ctx, s, []byte(`{"event":"join"}`))
			recv(t, s)
		}

		h.HandleEvent(ctx, tab1, event(t, domain.EventPrivateMessage, domain.PrivateMessageRequest{ReceiverID: "bob", Content: "hi"}))

		for _, s := range []*Session{bob, tab1, tab2} {
			assert.Equal(t, domain.EventPrivateMessage, recv(t, s).Event)
		}
		hub.Online("alice")
		assert.Len(t, tab1.Outbound(), 0)
		assert.Len(t, tab2.Outbound(), 0)
	})

	t.Run("寫入失敗只回 error 給 sender", func(t *testing.T) {
		repo := new(MockMessageRepository)
		repo.On("Insert", ctx, mock.Anything).Return(errors.New("mongo down"))
		h, hub := newWSHandler(t, repo)

		alice, bob := NewSession("alice", 8), NewSession("bob", 8)
		for _, s := range []*Session{alice, bob} {
			h.HandleEvent(ctx, s, []byte(`{"event":"join"}`))
			recv(t, s)
		}

		h.HandleEvent(ctx, alice, event(t, domain.EventPrivateMessage, domain.PrivateMessageRequest{ReceiverID: "bob", Content: "hi"}))

		env := recv(t, alice)
		assert.Equal(t, domain.EventError, env.Event)
		var e domain.ErrorEvent
		require.NoError(t, env.Decode(&e))
		assert.Equal(t, domain.EventPrivateMessage, e.Event)

		hub.Online("bob")
		assert.Len(t, bob.Outbound(), 0)
	})

	t.Run("senderId 與 token 不同", func(t *testing.T) {
		repo := new(MockMessageRepository)
		h, _ := newWSHandler(t, repo)
		s := NewSession("mallory", 8)

		h.HandleEvent(ctx, s, event(t, domain.EventPrivateMessage, domain.PrivateMessageRequest{
			SenderID: "alice", ReceiverID: "bob", Content: "hi",
		}))
		assert.Equal(t, domain.EventError, recv(t, s).Event)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestHandleEvent_Malformed(t *testing.T) {
	h, _ := newWSHandler(t, new(MockMessageRepository))
	s := NewSession("alice", 8)

	h.HandleEvent(context.Background(), s, []byte("not json"))
	assert.Equal(t, domain.EventError, recv(t, s).Event)

	h.HandleEvent(context.Background(), s, []byte(`{"event":"dance"}`))
	assert.Equal(t, domain.EventError, recv(t, s).Event)
}

// fakeConn 模擬 websocket 連線
type fakeConn struct {
	in     chan []byte
	out    chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 8), out: make(chan []byte, 8), closed: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case b, ok := <-c.in:
		if !ok {
			return 0, nil, io.EOF
		}
		return websocket.TextMessage, b, nil
	case <-c.closed:
		return 0, nil, io.EOF
	}
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	select {
	case <-c.closed:
		return io.ErrClosedPipe
	case c.out <- data:
		return nil
	}
}

func (c *fakeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (c *fakeConn) SetReadDeadline(time.Time) error           { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error          { return nil }
func (c *fakeConn) SetPongHandler(func(string) error)         {}
func (c *fakeConn) SetReadLimit(int64)                        {}
func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func TestServe_Lifecycle(t *testing.T) {
	h, hub := newWSHandler(t, new(MockMessageRepository))
	conn := newFakeConn()

	done := make(chan struct{})
	go func() {
		h.serve(context.Background(), conn, "alice")
		close(done)
	}()

	conn.in <- []byte(`{"event":"join"}`)
	select {
	case b := <-conn.out:
		var env notify.Envelope
		require.NoError(t, json.Unmarshal(b, &env))
		assert.Equal(t, domain.EventJoined, env.Event)
	case <-time.After(time.Second):
		t.Fatal("no joined event")
	}
	assert.Equal(t, 1, hub.Online("alice"))

	// transport 關閉後移出 room
	close(conn.in)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("serve did not return")
	}
	assert.Equal(t, 0, hub.Online("alice"))
}
