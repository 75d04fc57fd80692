// Package chatclient chat service /ws 的 Go client, 收到的通知整理進 Feed
package chatclient

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	chat "social_network_service/internal/chat/domain"
	"social_network_service/pkg/notify"

	"github.com/gorilla/websocket"
)

// ErrClosed 連線已關閉
var ErrClosed = errors.New("chatclient: connection closed")

const writeWait = 10 * time.Second

// Client 一條 websocket 連線
type Client struct {
	conn *websocket.Conn
	feed *Feed

	writeMu sync.Mutex
	mu      sync.Mutex
	self    string

	events    chan notify.Envelope
	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// Dial 連到 ws://host/ws, token 放在 Authorization header
func Dial(ctx context.Context, url, token string, feed *Feed) (*Client, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, errors.Join(err, errors.New(resp.Status))
		}
		return nil, err
	}
	if feed == nil {
		feed = NewFeed(0)
	}

	c := &Client{
		conn:   conn,
		feed:   feed,
		events: make(chan notify.Envelope, 64),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Feed 通知列表
func (c *Client) Feed() *Feed { return c.feed }

// Events 所有收到的事件, 讀太慢時新事件會被丟掉
func (c *Client) Events() <-chan notify.Envelope { return c.events }

// Done 連線結束時關閉
func (c *Client) Done() <-chan struct{} { return c.done }

// Err 連線結束的原因
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Join userID 空白時加入 token 本人的 room
func (c *Client) Join(userID string) error {
	return c.send(chat.EventJoin, chat.JoinRequest{UserID: userID})
}

// SendPrivateMessage server 存檔後推給對方, 也會回送給自己
func (c *Client) SendPrivateMessage(receiverID, content, media string) error {
	return c.send(chat.EventPrivateMessage, chat.PrivateMessageRequest{
		ReceiverID: receiverID,
		Content:    content,
		Media:      media,
	})
}

// Close 關閉連線
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()
	err := c.conn.Close()
	<-c.done
	return err
}

func (c *Client) send(event string, data interface{}) error {
	env, err := notify.NewEnvelope(event, data)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(env)
}

func (c *Client) readLoop() {
	defer c.closeOnce.Do(func() { close(c.done) })

	for {
		var env notify.Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
			return
		}
		c.dispatch(env)

		select {
		case c.events <- env:
		default:
		}
	}
}

// dispatch 將事件轉成 Notification
func (c *Client) dispatch(env notify.Envelope) {
	switch env.Event {
	case chat.EventJoined:
		var j chat.JoinedEvent
		if env.Decode(&j) == nil {
			c.mu.Lock()
			c.self = j.UserID
			c.mu.Unlock()
		}

	case chat.EventPrivateMessage:
		var m chat.PrivateMessageEvent
		if env.Decode(&m) != nil {
			return
		}
		c.mu.Lock()
		self := c.self
		c.mu.Unlock()
		// 自己送出的回送不算通知
		if m.SenderID == self {
			return
		}
		c.feed.Add(Notification{Type: TypeMessage, From: m.SenderID, Content: m.Content, Timestamp: m.CreatedAt})

	case notify.EventFriendRequest:
		var r notify.FriendRequest
		if env.Decode(&r) != nil {
			return
		}
		c.feed.Add(Notification{Type: TypeFriendRequest, From: r.RequesterID, Content: "sent you a friend request", Timestamp: r.CreatedAt})

	case notify.EventFriendPost:
		var p notify.FriendPost
		if env.Decode(&p) != nil {
			return
		}
		c.feed.Add(Notification{Type: TypeFriendPost, From: p.AuthorID, Content: p.Content, Timestamp: p.ApprovedAt})
	}
}
