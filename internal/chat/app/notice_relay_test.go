package app

import (
	"testing"

	"social_network_service/pkg/logger"
	"social_network_service/pkg/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayHandler(t *testing.T) {
	logger.SetNewNop()
	pusher := &recordPusher{}
	handler := RelayHandler(pusher)

	env, err := notify.NewEnvelope(notify.EventFriendRequest, notify.FriendRequest{RequesterID: "alice", RecipientID: "bob"})
	require.NoError(t, err)
	handler("bob", env)

	// 不轉推 private_message, 只能由 chat service 自己產生
	handler("bob", notify.Envelope{Event: "private_message"})

	calls := pusher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "bob", calls[0].UserID)
	assert.Equal(t, notify.EventFriendRequest, calls[0].Env.Event)
}
