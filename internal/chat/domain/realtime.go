package domain

import "time"

// 即時事件名稱, client 與 server 共用 {event, data} 格式
const (
	// EventJoin client -> server
	EventJoin = "join"
	// EventPrivateMessage client <-> server
	EventPrivateMessage = "private_message"
	// EventJoined server -> client, join 成功
	EventJoined = "joined"
	// EventError server -> client, 只送給出錯的連線
	EventError = "error"
)

// JoinRequest join data, UserID 空白時加入 token 本人的 room
type JoinRequest struct {
	UserID string `json:"userId"`
}

// JoinedEvent joined data
type JoinedEvent struct {
	UserID string `json:"userId"`
}

// PrivateMessageRequest client 送出的 private_message
type PrivateMessageRequest struct {
	SenderID   string `json:"senderId,omitempty"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content,omitempty"`
	Media      string `json:"media,omitempty"`
}

// PrivateMessageEvent server 推送的 private_message
type PrivateMessageEvent struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content,omitempty"`
	Media      string    `json:"media,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ErrorEvent error data
type ErrorEvent struct {
	Event   string `json:"event,omitempty"`
	Message string `json:"message"`
}
