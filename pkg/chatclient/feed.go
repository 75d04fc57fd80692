package chatclient

import (
	"fmt"
	"sync"
	"time"
)

// NotificationType 通知種類
type NotificationType string

const (
	// TypeMessage 別人傳來的訊息
	TypeMessage NotificationType = "message"
	// TypeFriendRequest 好友邀請
	TypeFriendRequest NotificationType = "friend_request"
	// TypeFriendPost 好友發文
	TypeFriendPost NotificationType = "friend_post"
)

// Notification 只存在 client 端, 不回報 server
type Notification struct {
	Type      NotificationType `json:"type"`
	From      string           `json:"from"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}

// Feed 新的在前, limit > 0 時超過就丟掉最舊的
type Feed struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

// NewFeed limit <= 0 表示不限
func NewFeed(limit int) *Feed {
	return &Feed{limit: limit}
}

// Add 放在最前面
func (f *Feed) Add(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, Notification{})
	copy(f.items[1:], f.items)
	f.items[0] = n
	if f.limit > 0 && len(f.items) > f.limit {
		f.items = f.items[:f.limit]
	}
}

// List snapshot, index 0 最新
func (f *Feed) List() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification(nil), f.items...)
}

// MarkRead i 為 List 的 index
func (f *Feed) MarkRead(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.items) {
		return fmt.Errorf("notification %d out of range [0,%d)", i, len(f.items))
	}
	f.items[i].Read = true
	return nil
}

// MarkAllRead 全部已讀
func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		f.items[i].Read = true
	}
}

// Unread 未讀數
func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, it := range f.items {
		if !it.Read {
			n++
		}
	}
	return n
}
