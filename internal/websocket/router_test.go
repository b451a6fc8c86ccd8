package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveFrame(t *testing.T, c *Client) *SignalMessage {
	t.Helper()
	select {
	case data := <-c.Send:
		msg, err := ParseSignalMessage(data)
		if err != nil {
			// error frames have no sender; decode them directly
			var raw SignalMessage
			require.NoError(t, jsonCodec.Unmarshal(data, &raw))
			return &raw
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("expected a frame, got none")
		return nil
	}
}

func assertNoFrame(t *testing.T, c *Client, reason ...string) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("expected no frame (%v), got %s", reason, data)
	default:
	}
}

func newTestRouter() (*SignalRouter, *Hub, *SessionDirectory) {
	hub := NewHub()
	sessions := NewSessionDirectory()
	return NewSignalRouter(hub, sessions), hub, sessions
}

func TestRoute_DirectDelivery_ForcesRoomToken(t *testing.T) {
	router, _, sessions := newTestRouter()

	alice := newTestClient("alice", "room-R")
	bob := newTestClient("bob", "room-R")
	sessions.Register("bob", bob)

	router.Route(alice, []byte(`{"type":"offer","roomToken":"spoofed-room","from":"alice","to":"bob","payload":{"sdp":"x"}}`))

	got := receiveFrame(t, bob)
	assert.Equal(t, TypeOffer, got.Type)
	assert.Equal(t, "room-R", got.RoomToken, "room token comes from the connection, not the body")
	assert.Equal(t, "alice", got.From)
	assertNoFrame(t, bob)
}

func TestRoute_DirectDelivery_ExactlyOnce(t *testing.T) {
	router, hub, sessions := newTestRouter()

	alice := newTestClient("alice", "room-R")
	bob := newTestClient("bob", "room-R")
	carol := newTestClient("carol", "room-R")
	sessions.Register("bob", bob)
	sessions.Register("carol", carol)
	hub.Subscribe("room-R", alice)
	hub.Subscribe("room-R", bob)
	hub.Subscribe("room-R", carol)

	router.Route(alice, []byte(`{"type":"answer","from":"alice","to":"bob"}`))

	receiveFrame(t, bob)
	assertNoFrame(t, bob)
	assertNoFrame(t, carol, "addressed messages must not leak to the room")
	assertNoFrame(t, alice)
}

func TestRoute_UnresolvableRecipient_SilentlyDropped(t *testing.T) {
	router, hub, _ := newTestRouter()

	alice := newTestClient("alice", "room-R")
	carol := newTestClient("carol", "room-R")
	hub.Subscribe("room-R", alice)
	hub.Subscribe("room-R", carol)

	// "bob" never registered a session.
	router.Route(alice, []byte(`{"type":"offer","from":"alice","to":"bob"}`))

	assertNoFrame(t, alice, "no error comes back to the sender")
	assertNoFrame(t, carol, "a dropped direct message is not broadcast instead")
}

func TestRoute_Broadcast_IncludesSender(t *testing.T) {
	router, hub, _ := newTestRouter()

	alice := newTestClient("alice", "room-R")
	bob := newTestClient("bob", "room-R")
	hub.Subscribe("room-R", alice)
	hub.Subscribe("room-R", bob)

	router.Route(alice, []byte(`{"type":"join","from":"alice"}`))

	fromBob := receiveFrame(t, bob)
	assert.Equal(t, TypeJoin, fromBob.Type)
	assert.Equal(t, "room-R", fromBob.RoomToken)

	echo := receiveFrame(t, alice)
	assert.Equal(t, TypeJoin, echo.Type, "sender receives its own join notification")
}

func TestRoute_BroadcastScopedToRoom(t *testing.T) {
	router, hub, _ := newTestRouter()

	alice := newTestClient("alice", "room-R")
	stranger := newTestClient("zed", "room-Z")
	hub.Subscribe("room-R", alice)
	hub.Subscribe("room-Z", stranger)

	router.Route(alice, []byte(`{"type":"custom","from":"alice","payload":"hi"}`))

	receiveFrame(t, alice)
	assertNoFrame(t, stranger)
}

func TestRoute_UnknownTypeNormalizedToCustom(t *testing.T) {
	router, hub, _ := newTestRouter()

	alice := newTestClient("alice", "room-R")
	bob := newTestClient("bob", "room-R")
	hub.Subscribe("room-R", alice)
	hub.Subscribe("room-R", bob)

	router.Route(alice, []byte(`{"type":"reaction","from":"alice","payload":{"emoji":"+1"}}`))

	got := receiveFrame(t, bob)
	assert.Equal(t, TypeCustom, got.Type)
	assert.JSONEq(t, `{"emoji":"+1"}`, string(got.Payload))
}

func TestRoute_MalformedFrame_ErrorToSenderOnly(t *testing.T) {
	router, hub, _ := newTestRouter()

	alice := newTestClient("alice", "room-R")
	bob := newTestClient("bob", "room-R")
	hub.Subscribe("room-R", alice)
	hub.Subscribe("room-R", bob)

	router.Route(alice, []byte(`{"type":"offer"}`)) // no sender

	errFrame := receiveFrame(t, alice)
	assert.Equal(t, TypeError, errFrame.Type)
	assertNoFrame(t, bob)
}

func TestRoute_ConnectionWithoutRoom_Rejected(t *testing.T) {
	router, _, _ := newTestRouter()

	floating := newTestClient("alice", "")

	router.Route(floating, []byte(`{"type":"offer","from":"alice"}`))

	errFrame := receiveFrame(t, floating)
	assert.Equal(t, TypeError, errFrame.Type)
}
