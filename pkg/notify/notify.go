// Package notify 跨服務的即時通知, friendship service 發佈, chat service 轉推給在線連線
package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// 即時事件名稱
const (
	EventFriendRequest = "friend_request_received"
	EventFriendPost    = "friend_post"
)

// ChannelPrefix redis channel 前綴, 完整格式 notify:user:<userID>
const ChannelPrefix = "notify:user:"

// ChannelPattern psubscribe 用
const ChannelPattern = ChannelPrefix + "*"

// Channel 組出 userID 的 channel
func Channel(userID string) string {
	return ChannelPrefix + userID
}

// UserFromChannel 從 channel 取回 userID
func UserFromChannel(channel string) (string, bool) {
	if !strings.HasPrefix(channel, ChannelPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(channel, ChannelPrefix)
	return id, id != ""
}

// Envelope realtime 傳輸格式 {event, data}
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope marshal data into envelope
func NewEnvelope(event string, data interface{}) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s: %w", event, err)
	}
	return Envelope{Event: event, Data: raw}, nil
}

// Decode unmarshal data into v
func (e Envelope) Decode(v interface{}) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("event %s without data", e.Event)
	}
	return json.Unmarshal(e.Data, v)
}

// FriendRequest friend_request_received payload
type FriendRequest struct {
	RequestID   string    `json:"requestId"`
	RequesterID string    `json:"requesterId"`
	RecipientID string    `json:"recipientId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FriendPost friend_post payload
type FriendPost struct {
	PostID     string    `json:"postId"`
	AuthorID   string    `json:"userId"`
	Content    string    `json:"content"`
	ApprovedAt time.Time `json:"approvedAt"`
}
