package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SubscribeAndBroadcast(t *testing.T) {
	hub := NewHub()
	alice := newTestClient("alice", "room-R")
	bob := newTestClient("bob", "room-R")

	hub.Subscribe("room-R", alice)
	hub.Subscribe("room-R", bob)

	hub.BroadcastToRoom("room-R", []byte("hello"))

	assert.Equal(t, []byte("hello"), <-alice.Send)
	assert.Equal(t, []byte("hello"), <-bob.Send)
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	alice := newTestClient("alice", "room-R")
	bob := newTestClient("bob", "room-R")

	hub.Subscribe("room-R", alice)
	hub.Subscribe("room-R", bob)
	hub.Unsubscribe("room-R", alice)

	hub.BroadcastToRoom("room-R", []byte("hello"))

	assertNoFrame(t, alice)
	assert.Equal(t, []byte("hello"), <-bob.Send)
	assert.Equal(t, 1, hub.RoomSize("room-R"))
}

func TestHub_SlowConsumerDoesNotStallOthers(t *testing.T) {
	hub := NewHub()
	slow := &Client{
		ID:        "slow-conn",
		UserID:    "slow",
		RoomToken: "room-R",
		Send:      make(chan []byte), // unbuffered and never read
		done:      make(chan struct{}),
	}
	healthy := newTestClient("healthy", "room-R")

	hub.Subscribe("room-R", slow)
	hub.Subscribe("room-R", healthy)

	hub.BroadcastToRoom("room-R", []byte("frame"))

	// The broadcast returned without blocking and the healthy peer
	// still got its copy.
	assert.Equal(t, []byte("frame"), <-healthy.Send)

	stats := hub.GetHubStats()
	assert.Equal(t, int64(1), stats.MessagesSent)
	assert.Equal(t, int64(1), stats.MessagesDropped)
}

func TestHub_ClosedClientIsSkipped(t *testing.T) {
	hub := NewHub()
	gone := newTestClient("gone", "room-R")
	close(gone.done)
	healthy := newTestClient("healthy", "room-R")

	hub.Subscribe("room-R", gone)
	hub.Subscribe("room-R", healthy)

	hub.BroadcastToRoom("room-R", []byte("frame"))

	assert.Equal(t, []byte("frame"), <-healthy.Send)
	assertNoFrame(t, gone)
}

func TestHub_EmptyRoomTopicIsRemoved(t *testing.T) {
	hub := NewHub()
	alice := newTestClient("alice", "room-R")

	hub.Subscribe("room-R", alice)
	hub.Unsubscribe("room-R", alice)

	stats := hub.GetHubStats()
	assert.Equal(t, 0, stats.TotalRooms)
	assert.Equal(t, 0, stats.TotalClients)
}

func TestHub_StatsCountConnections(t *testing.T) {
	hub := NewHub()
	hub.Subscribe("room-R", newTestClient("a", "room-R"))
	hub.Subscribe("room-R", newTestClient("b", "room-R"))
	hub.Subscribe("room-Z", newTestClient("c", "room-Z"))

	stats := hub.GetHubStats()
	require.Equal(t, 2, stats.TotalRooms)
	assert.Equal(t, 3, stats.TotalClients)
	assert.Equal(t, int64(3), stats.TotalConnections)
}
