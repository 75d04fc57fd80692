package app

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"social_network_service/internal/chat/domain"
	"social_network_service/pkg/config"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/logger"
	"social_network_service/pkg/middlewares"
	"social_network_service/pkg/notify"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

const (
	// 寫出逾時
	writeWait = 5 * time.Second
	// client 送來的單一事件上限
	readLimit = 64 * 1024
	// 預設 ping 間隔
	defaultPingPeriod = 30 * time.Second
)

// wsConn fiber websocket.Conn 用到的部分
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	SetReadLimit(limit int64)
	Close() error
}

// ChatWebsocketHandler 處理 /ws 連線
type ChatWebsocketHandler struct {
	hub        *Hub
	messageUC  *MessageUseCase
	metrics    *Metrics
	queue      int
	pingPeriod time.Duration
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(hub *Hub, messageUC *MessageUseCase, metrics *Metrics, cfg config.RealtimeConfig) *ChatWebsocketHandler {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	ping := time.Duration(cfg.PingPeriodSecond) * time.Second
	if ping <= 0 {
		ping = defaultPingPeriod
	}
	return &ChatWebsocketHandler{
		hub:        hub,
		messageUC:  messageUC,
		metrics:    metrics,
		queue:      cfg.SendQueue,
		pingPeriod: ping,
	}
}

// HandleConnection 是 WebSocket 連線的進入點, token 已在 upgrade 前驗證
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	userID, _ := conn.Locals(middlewares.TokenUserID).(string)
	h.serve(ctx, conn, userID)
}

func (h *ChatWebsocketHandler) serve(ctx context.Context, conn wsConn, userID string) {
	s := NewSession(userID, h.queue)
	h.metrics.Connections.Inc()
	logger.Log.Info("websocket open", zap.String("userID", userID), zap.String("session", s.ID()))

	pumpDone := make(chan struct{})
	go h.writePump(conn, s, pumpDone)

	defer func() {
		h.hub.Leave(s)
		s.Close()
		<-pumpDone
		_ = conn.Close()
		h.metrics.Connections.Dec()
		logger.Log.Info("websocket close", zap.String("userID", userID), zap.String("session", s.ID()))
	}()

	pongWait := h.pingPeriod * 2
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	//server發出ping之後client連線正常會回pong
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Debug("websocket read error", zap.String("userID", userID), zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		if mt != websocket.TextMessage {
			h.replyError(s, "", "only text messages are supported")
			continue
		}
		h.HandleEvent(ctx, s, raw)
		if s.Closed() {
			return
		}
	}
}

// writePump 唯一寫出 conn 的 goroutine
func (h *ChatWebsocketHandler) writePump(conn wsConn, s *Session, done chan<- struct{}) {
	ticker := time.NewTicker(h.pingPeriod)
	defer func() {
		ticker.Stop()
		close(done)
	}()

	for {
		select {
		case b := <-s.Outbound():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				logger.Log.Debug("websocket write error", zap.String("session", s.ID()), zap.Error(err))
				s.Close()
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logger.Log.Debug("websocket ping error", zap.String("session", s.ID()), zap.Error(err))
				s.Close()
				_ = conn.Close()
				return
			}
		case <-s.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			// 讓 read loop 結束
			_ = conn.Close()
			return
		}
	}
}

// HandleEvent 處理一個 client 事件
func (h *ChatWebsocketHandler) HandleEvent(ctx context.Context, s *Session, raw []byte) {
	var env notify.Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
		h.replyError(s, "", "malformed event")
		return
	}

	switch env.Event {
	case domain.EventJoin:
		h.join(s, env)
	case domain.EventPrivateMessage:
		h.privateMessage(ctx, s, env)
	default:
		h.replyError(s, env.Event, "unknown event")
	}
}

// join room 綁定 token 本人, 不接受加入別人的 room
func (h *ChatWebsocketHandler) join(s *Session, env notify.Envelope) {
	var req domain.JoinRequest
	if len(env.Data) > 0 && string(env.Data) != "null" {
		// 相容 join("<userId>") 的字串形式
		if err := json.Unmarshal(env.Data, &req.UserID); err != nil {
			if err := env.Decode(&req); err != nil {
				h.replyError(s, env.Event, "malformed join")
				return
			}
		}
	}

	if req.UserID != "" && req.UserID != s.UserID() {
		logger.Log.Warn("join rejected", zap.String("subject", s.UserID()), zap.String("userId", req.UserID))
		h.replyError(s, env.Event, "cannot join another user's room")
		return
	}

	if !h.hub.Join(s, s.UserID()) {
		h.replyError(s, env.Event, "server is shutting down")
		return
	}
	joined, _ := notify.NewEnvelope(domain.EventJoined, domain.JoinedEvent{UserID: s.UserID()})
	h.reply(s, joined)
}

func (h *ChatWebsocketHandler) privateMessage(ctx context.Context, s *Session, env notify.Envelope) {
	var req domain.PrivateMessageRequest
	if err := env.Decode(&req); err != nil {
		h.replyError(s, env.Event, "malformed private_message")
		return
	}
	if req.SenderID != "" && req.SenderID != s.UserID() {
		h.replyError(s, env.Event, errprocess.Wrap(errprocess.ErrForbidden, "senderId does not match token").Error())
		return
	}

	if _, err := h.messageUC.SendFrom(ctx, s, s.UserID(), req.ReceiverID, req.Content, req.Media); err != nil {
		if errors.Is(err, errprocess.ErrUpstreamUnavailable) {
			logger.Log.Error("private_message not stored", zap.String("userID", s.UserID()), zap.Error(err))
		}
		h.replyError(s, env.Event, err.Error())
	}
}

func (h *ChatWebsocketHandler) replyError(s *Session, event, msg string) {
	env, _ := notify.NewEnvelope(domain.EventError, domain.ErrorEvent{Event: event, Message: msg})
	h.reply(s, env)
}

// reply 只送給這條連線, queue 滿時關閉連線
func (h *ChatWebsocketHandler) reply(s *Session, env notify.Envelope) {
	if !s.EnqueueEvent(env) && !s.Closed() {
		h.metrics.SlowConsumers.Inc()
		s.Close()
	}
}
