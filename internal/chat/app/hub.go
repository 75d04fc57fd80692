package app

import (
	"context"
	"encoding/json"

	"social_network_service/pkg/logger"
	"social_network_service/pkg/notify"

	"go.uber.org/zap"
)

// Pusher 推送事件到 userID 的 room
type Pusher interface {
	Push(userID string, env notify.Envelope)
	PushExcept(userID string, env notify.Envelope, except *Session)
}

// Hub 管理 room (userID) 與連線的對應, 所有狀態只在 Run 的 goroutine 內修改
type Hub struct {
	rooms   map[string]map[*Session]struct{}
	members map[*Session]string

	cmdC    chan func()
	stopped chan struct{}
	metrics *Metrics
}

// NewHub create hub, 需另外呼叫 Run
func NewHub(metrics *Metrics) *Hub {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Hub{
		rooms:   make(map[string]map[*Session]struct{}),
		members: make(map[*Session]string),
		cmdC:    make(chan func(), 256),
		stopped: make(chan struct{}),
		metrics: metrics,
	}
}

// Run event loop, ctx 結束時關閉所有連線
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case fn := <-h.cmdC:
			fn()
		case <-ctx.Done():
			for s := range h.members {
				s.Close()
			}
			h.rooms = map[string]map[*Session]struct{}{}
			h.members = map[*Session]string{}
			h.metrics.Rooms.Set(0)
			logger.Log.Info("hub stopped")
			return
		}
	}
}

// exec 丟給 event loop 執行, hub 已停止時直接略過
func (h *Hub) exec(fn func()) bool {
	select {
	case h.cmdC <- fn:
		return true
	case <-h.stopped:
		return false
	}
}

// call 同 exec 但等待執行完成
func (h *Hub) call(fn func()) bool {
	done := make(chan struct{})
	if !h.exec(func() {
		fn()
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-h.stopped:
		return false
	}
}

// Join session 加入 room, 已在其他 room 時先移出
func (h *Hub) Join(s *Session, room string) bool {
	return h.call(func() {
		if cur, ok := h.members[s]; ok {
			if cur == room {
				return
			}
			h.remove(s)
		}
		if s.Closed() {
			return
		}
		set, ok := h.rooms[room]
		if !ok {
			set = make(map[*Session]struct{})
			h.rooms[room] = set
			h.metrics.Rooms.Inc()
		}
		set[s] = struct{}{}
		h.members[s] = room
	})
}

// Leave 連線關閉時移出所有 room
func (h *Hub) Leave(s *Session) {
	h.exec(func() { h.remove(s) })
}

// Push 實作 Pusher, 推給 room 內每一條連線; queue 滿的連線直接關閉
func (h *Hub) Push(userID string, env notify.Envelope) {
	h.PushExcept(userID, env, nil)
}

// PushExcept 同 Push, 但跳過 except (送出事件的那條連線自己回送)
func (h *Hub) PushExcept(userID string, env notify.Envelope, except *Session) {
	b, err := json.Marshal(env)
	if err != nil {
		logger.Log.Error("marshal event", zap.String("event", env.Event), zap.Error(err))
		return
	}
	h.exec(func() {
		for s := range h.rooms[userID] {
			if s == except {
				continue
			}
			if s.Enqueue(b) {
				h.metrics.Pushed.WithLabelValues(env.Event).Inc()
				continue
			}
			logger.Log.Warn("slow consumer, close connection",
				zap.String("userID", userID),
				zap.String("session", s.ID()),
			)
			h.metrics.SlowConsumers.Inc()
			h.remove(s)
			s.Close()
		}
	})
}

// Online room 內的連線數
func (h *Hub) Online(userID string) int {
	n := 0
	h.call(func() { n = len(h.rooms[userID]) })
	return n
}

func (h *Hub) remove(s *Session) {
	room, ok := h.members[s]
	if !ok {
		return
	}
	delete(h.members, s)
	if set, ok := h.rooms[room]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.rooms, room)
			h.metrics.Rooms.Dec()
		}
	}
}
