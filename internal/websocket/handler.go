package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	app_error "github.com/xenn00/livestream-service/internal/errors"
	room_service "github.com/xenn00/livestream-service/internal/use-case/room-case"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: limit your cors, don't get true so easy in production
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler owns the connect/disconnect path: authenticate, upgrade,
// wire the connection into the Session Directory and room topic, and
// fire the leave effect when the transport closes.
type WSHandler struct {
	Hub           *Hub
	Sessions      *SessionDirectory
	Router        *SignalRouter
	Rooms         room_service.RoomServiceContract
	authenticator AuthenticatorFunc
}

func NewWSHandler(hub *Hub, sessions *SessionDirectory, rooms room_service.RoomServiceContract, auth AuthenticatorFunc) *WSHandler {
	return &WSHandler{
		Hub:           hub,
		Sessions:      sessions,
		Router:        NewSignalRouter(hub, sessions),
		Rooms:         rooms,
		authenticator: auth,
	}
}

func (h *WSHandler) HandleWS(w http.ResponseWriter, r *http.Request, roomToken string) {
	userID, err := h.authenticator(r)
	if err != nil {
		log.Warn().Err(err).Str("roomToken", roomToken).Msg("ws: authentication failed")
		writeWSError(w, app_error.Unauthorized(err.Error(), "auth"))
		return
	}

	if _, aerr := h.Rooms.GetRoom(r.Context(), roomToken); aerr != nil {
		writeWSError(w, aerr)
		return
	}

	conn, uerr := upgrader.Upgrade(w, r, nil)
	if uerr != nil {
		log.Error().Err(uerr).Msg("ws: upgrade failed")
		return
	}

	client := NewClient(conn, userID, roomToken)

	h.Sessions.Register(userID, client)
	h.Hub.Subscribe(roomToken, client)

	go client.writePump()
	go func() {
		client.readPump(h.Router.Route)
		h.teardown(client)
	}()
}

// teardown runs once the transport is gone. The leave effect is
// best-effort: the departed participant may linger in the room set for a
// moment, never forever.
func (h *WSHandler) teardown(client *Client) {
	h.Hub.Unsubscribe(client.RoomToken, client)
	h.Sessions.Unregister(client.UserID, client)
	client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.LeaveRoom(ctx, client.RoomToken, client.UserID); err != nil {
		log.Debug().Str("roomToken", client.RoomToken).Str("userID", client.UserID).Str("reason", err.Message).Msg("ws: disconnect leave skipped")
	}

	leave := &SignalMessage{
		Type:      TypeLeave,
		RoomToken: client.RoomToken,
		From:      client.UserID,
	}
	if data, err := leave.Encode(); err == nil {
		h.Hub.BroadcastToRoom(client.RoomToken, data)
	}

	log.Info().Str("roomToken", client.RoomToken).Str("userID", client.UserID).Str("clientID", client.ID).Msg("ws: connection closed")
}

func writeWSError(w http.ResponseWriter, appErr *app_error.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	_ = appErr.JSON(w)
}
