package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	app_error "github.com/xenn00/livestream-service/internal/errors"
)

func TestParseSignalMessage_Valid(t *testing.T) {
	raw := []byte(`{"type":"offer","roomToken":"tok-1","from":"alice","to":"bob","payload":{"sdp":"v=0..."}}`)

	msg, err := ParseSignalMessage(raw)

	require.Nil(t, err)
	assert.Equal(t, TypeOffer, msg.Type)
	assert.Equal(t, "tok-1", msg.RoomToken)
	assert.Equal(t, "alice", msg.From)
	assert.Equal(t, "bob", msg.To)
	assert.JSONEq(t, `{"sdp":"v=0..."}`, string(msg.Payload), "payload must be carried untouched")
}

func TestParseSignalMessage_NotJSON(t *testing.T) {
	_, err := ParseSignalMessage([]byte("not json at all"))

	require.NotNil(t, err)
	assert.Equal(t, app_error.KindProtocolError, err.Kind)
}

func TestParseSignalMessage_EmptySender(t *testing.T) {
	_, err := ParseSignalMessage([]byte(`{"type":"offer","roomToken":"tok-1"}`))

	require.NotNil(t, err)
	assert.Equal(t, app_error.KindProtocolError, err.Kind)
	assert.Equal(t, "from", err.Field)
}

func TestParseSignalMessage_UnknownTypeBecomesCustom(t *testing.T) {
	msg, err := ParseSignalMessage([]byte(`{"type":"whiteboard-sync","from":"alice","payload":[1,2,3]}`))

	require.Nil(t, err)
	assert.Equal(t, TypeCustom, msg.Type)
	assert.JSONEq(t, `[1,2,3]`, string(msg.Payload))
}

func TestParseSignalMessage_PayloadRoundTripsByteForByte(t *testing.T) {
	raw := []byte(`{"type":"ice-candidate","from":"alice","payload":{"candidate":"candidate:1 1 UDP 2122252543 192.0.2.1 54321 typ host","sdpMid":"0"}}`)

	msg, err := ParseSignalMessage(raw)
	require.Nil(t, err)

	encoded, eerr := msg.Encode()
	require.NoError(t, eerr)

	decoded, err := ParseSignalMessage(encoded)
	require.Nil(t, err)
	assert.Equal(t, string(msg.Payload), string(decoded.Payload))
}
