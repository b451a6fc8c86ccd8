package websocket

import (
	"github.com/rs/zerolog/log"
	app_error "github.com/xenn00/livestream-service/internal/errors"
)

// SignalRouter relays negotiation messages between room participants.
// Delivery is best-effort: an unreachable recipient or a dead subscriber
// is never an error surfaced to the sender.
type SignalRouter struct {
	hub      *Hub
	sessions *SessionDirectory
}

func NewSignalRouter(hub *Hub, sessions *SessionDirectory) *SignalRouter {
	return &SignalRouter{
		hub:      hub,
		sessions: sessions,
	}
}

// Route handles one inbound frame from sender's connection.
func (r *SignalRouter) Route(sender *Client, raw []byte) {
	msg, perr := ParseSignalMessage(raw)
	if perr != nil {
		r.reject(sender, perr)
		return
	}

	if sender.RoomToken == "" {
		r.reject(sender, app_error.Protocol("connection is not subscribed to a room", "roomToken"))
		return
	}

	// The room token always comes from the connection's subscription;
	// a client cannot address another room's topic by lying in the body.
	msg.RoomToken = sender.RoomToken

	data, err := msg.Encode()
	if err != nil {
		log.Error().Err(err).Str("roomToken", msg.RoomToken).Msg("signal: failed to encode message")
		return
	}

	log.Debug().Str("type", string(msg.Type)).Str("roomToken", msg.RoomToken).Str("from", msg.From).Str("to", msg.To).Msg("signal: routing message")

	if msg.To != "" {
		peer, ok := r.sessions.Resolve(msg.To)
		if !ok {
			// Recipient is gone. Dropping here is the designed
			// behaviour, not a failure: no retry, nothing back to
			// the sender, no fallback broadcast.
			log.Debug().Str("roomToken", msg.RoomToken).Str("to", msg.To).Msg("signal: recipient not connected, message dropped")
			return
		}
		if !peer.Deliver(data) {
			log.Debug().Str("roomToken", msg.RoomToken).Str("to", msg.To).Msg("signal: recipient unreachable, message dropped")
		}
		return
	}

	r.hub.BroadcastToRoom(msg.RoomToken, data)
}

// reject reports an ingress protocol error to the offending client only.
func (r *SignalRouter) reject(sender *Client, appErr *app_error.AppError) {
	log.Warn().Str("clientID", sender.ID).Str("userID", sender.UserID).Str("reason", appErr.Message).Msg("signal: rejecting malformed message")
	if frame := newErrorFrame(sender.RoomToken, appErr); frame != nil {
		sender.Deliver(frame)
	}
}
