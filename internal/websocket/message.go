package websocket

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
	app_error "github.com/xenn00/livestream-service/internal/errors"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

type MessageType string

const (
	TypeOffer        MessageType = "offer"
	TypeAnswer       MessageType = "answer"
	TypeICECandidate MessageType = "ice-candidate"
	TypeJoin         MessageType = "join"
	TypeLeave        MessageType = "leave"
	TypeCustom       MessageType = "custom"

	// TypeError is server-to-client only, used to report protocol
	// errors back to the offending connection.
	TypeError MessageType = "error"
)

// SignalMessage is the tagged envelope relayed between peers. Payload is
// opaque to this service: it is carried byte-for-byte and never parsed.
type SignalMessage struct {
	Type      MessageType     `json:"type"`
	RoomToken string          `json:"roomToken"`
	From      string          `json:"from"`
	To        string          `json:"to,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func (t MessageType) known() bool {
	switch t {
	case TypeOffer, TypeAnswer, TypeICECandidate, TypeJoin, TypeLeave, TypeCustom:
		return true
	}
	return false
}

// ParseSignalMessage validates a message at ingress. A frame that is not
// JSON or has an empty sender never reaches routing. Unknown type tags
// are carried as custom rather than rejected, so newer clients keep
// working against this relay.
func ParseSignalMessage(data []byte) (*SignalMessage, *app_error.AppError) {
	var msg SignalMessage
	if err := jsonCodec.Unmarshal(data, &msg); err != nil {
		return nil, app_error.Protocol("malformed signaling message", "body")
	}

	if msg.From == "" {
		return nil, app_error.Protocol("sender is required", "from")
	}

	if !msg.Type.known() {
		msg.Type = TypeCustom
	}

	return &msg, nil
}

func (m *SignalMessage) Encode() ([]byte, error) {
	return jsonCodec.Marshal(m)
}

func newErrorFrame(roomToken string, appErr *app_error.AppError) []byte {
	payload, _ := jsonCodec.Marshal(map[string]string{
		"kind":  string(appErr.Kind),
		"error": appErr.Message,
	})
	frame, err := (&SignalMessage{
		Type:      TypeError,
		RoomToken: roomToken,
		Payload:   payload,
	}).Encode()
	if err != nil {
		return nil
	}
	return frame
}
