package chatclient

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed(t *testing.T) {
	t.Run("新的在前", func(t *testing.T) {
		f := NewFeed(0)
		f.Add(Notification{Type: TypeMessage, From: "alice", Content: "1"})
		f.Add(Notification{Type: TypeFriendRequest, From: "bob", Content: "2"})

		list := f.List()
		require.Len(t, list, 2)
		assert.Equal(t, "2", list[0].Content)
		assert.Equal(t, "1", list[1].Content)
		assert.Equal(t, 2, f.Unread())
	})

	t.Run("超過上限丟掉最舊", func(t *testing.T) {
		f := NewFeed(2)
		for i := 0; i < 3; i++ {
			f.Add(Notification{Content: fmt.Sprint(i)})
		}
		list := f.List()
		require.Len(t, list, 2)
		assert.Equal(t, "2", list[0].Content)
		assert.Equal(t, "1", list[1].Content)
	})

	t.Run("已讀", func(t *testing.T) {
		f := NewFeed(0)
		f.Add(Notification{Content: "a", Timestamp: time.Now()})
		f.Add(Notification{Content: "b", Timestamp: time.Now()})

		require.NoError(t, f.MarkRead(1))
		assert.Equal(t, 1, f.Unread())
		assert.True(t, f.List()[1].Read)

		assert.Error(t, f.MarkRead(2))
		assert.Error(t, f.MarkRead(-1))

		f.MarkAllRead()
		assert.Zero(t, f.Unread())
	})

	t.Run("List 回傳複本", func(t *testing.T) {
		f := NewFeed(0)
		f.Add(Notification{Content: "a"})
		list := f.List()
		list[0].Read = true
		assert.Equal(t, 1, f.Unread())
	})

	t.Run("並行寫入", func(t *testing.T) {
		f := NewFeed(50)
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				f.Add(Notification{Type: TypeFriendPost})
				_ = f.Unread()
			}()
		}
		wg.Wait()
		assert.Len(t, f.List(), 50)
	})
}
