package domain

import "time"

// MessageStatus 訊息狀態, 目前只寫入 sent
type MessageStatus string

const (
	// StatusSent 已寫入
	StatusSent MessageStatus = "sent"
	// StatusDelivered 已送達
	StatusDelivered MessageStatus = "delivered"
	// StatusRead 已讀
	StatusRead MessageStatus = "read"
)

// Reaction 每個 user 在一則訊息上只有一個 emoji
type Reaction struct {
	UserID string `bson:"user_id" json:"userId"`
	Emoji  string `bson:"emoji" json:"emoji"`
}

// Message 一對一訊息
type Message struct {
	ID         string        `bson:"_id" json:"id"`
	SenderID   string        `bson:"sender_id" json:"senderId"`
	ReceiverID string        `bson:"receiver_id" json:"receiverId"`
	Content    string        `bson:"content,omitempty" json:"content,omitempty"`
	Media      string        `bson:"media,omitempty" json:"media,omitempty"`
	Status     MessageStatus `bson:"status" json:"status"`
	Reactions  []Reaction    `bson:"reactions" json:"reactions"`
	CreatedAt  time.Time     `bson:"created_at" json:"createdAt"`
}

// Participant sender 或 receiver
func (m *Message) Participant(userID string) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

// ReactionOf 取得 userID 的 emoji
func (m *Message) ReactionOf(userID string) (string, bool) {
	for _, r := range m.Reactions {
		if r.UserID == userID {
			return r.Emoji, true
		}
	}
	return "", false
}

// Event 推送給 client 的 private_message
func (m *Message) Event() PrivateMessageEvent {
	return PrivateMessageEvent{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Media:      m.Media,
		CreatedAt:  m.CreatedAt,
	}
}
