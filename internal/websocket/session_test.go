package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID, roomToken string) *Client {
	return &Client{
		ID:        userID + "-conn",
		UserID:    userID,
		RoomToken: roomToken,
		Send:      make(chan []byte, 8),
		done:      make(chan struct{}),
	}
}

func TestSessionDirectory_RegisterAndResolve(t *testing.T) {
	dir := NewSessionDirectory()
	client := newTestClient("alice", "tok-1")

	dir.Register("alice", client)

	got, ok := dir.Resolve("alice")
	require.True(t, ok)
	assert.Same(t, client, got)

	_, ok = dir.Resolve("bob")
	assert.False(t, ok)
}

func TestSessionDirectory_ReconnectReplaces(t *testing.T) {
	dir := NewSessionDirectory()
	old := newTestClient("alice", "tok-1")
	fresh := newTestClient("alice", "tok-1")

	dir.Register("alice", old)
	dir.Register("alice", fresh)

	got, ok := dir.Resolve("alice")
	require.True(t, ok)
	assert.Same(t, fresh, got, "newer connection wins")
}

func TestSessionDirectory_StaleUnregisterDoesNotClobber(t *testing.T) {
	dir := NewSessionDirectory()
	old := newTestClient("alice", "tok-1")
	fresh := newTestClient("alice", "tok-1")

	dir.Register("alice", old)
	dir.Register("alice", fresh)

	// The old connection's teardown fires after the reconnect.
	dir.Unregister("alice", old)

	got, ok := dir.Resolve("alice")
	require.True(t, ok, "newer registration must survive the stale unregister")
	assert.Same(t, fresh, got)
}

func TestSessionDirectory_UnregisterMatchingHandle(t *testing.T) {
	dir := NewSessionDirectory()
	client := newTestClient("alice", "tok-1")

	dir.Register("alice", client)
	dir.Unregister("alice", client)

	_, ok := dir.Resolve("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, dir.Len())
}
