package app

import (
	"encoding/json"
	"sync"

	"social_network_service/pkg/notify"

	"github.com/google/uuid"
)

// DefaultSendQueue 每條連線預設的待送事件上限
const DefaultSendQueue = 64

// Session 一條即時連線, 與傳輸層無關; write pump 從 Outbound 取資料寫出
type Session struct {
	id     string
	userID string
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

// NewSession create session for authenticated user
func NewSession(userID string, queue int) *Session {
	if queue <= 0 {
		queue = DefaultSendQueue
	}
	return &Session{
		id:     uuid.NewString(),
		userID: userID,
		send:   make(chan []byte, queue),
		done:   make(chan struct{}),
	}
}

// ID session id
func (s *Session) ID() string { return s.id }

// UserID token subject
func (s *Session) UserID() string { return s.userID }

// Outbound 待寫出的資料
func (s *Session) Outbound() <-chan []byte { return s.send }

// Done 連線關閉時 close
func (s *Session) Done() <-chan struct{} { return s.done }

// Close 可重複呼叫
func (s *Session) Close() {
	s.once.Do(func() { close(s.done) })
}

// Closed check session closed
func (s *Session) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Enqueue 不阻塞, queue 滿或已關閉回傳 false
func (s *Session) Enqueue(b []byte) bool {
	if s.Closed() {
		return false
	}
	select {
	case s.send <- b:
		return true
	default:
		return false
	}
}

// EnqueueEvent marshal envelope then Enqueue
func (s *Session) EnqueueEvent(env notify.Envelope) bool {
	b, err := json.Marshal(env)
	if err != nil {
		return false
	}
	return s.Enqueue(b)
}
