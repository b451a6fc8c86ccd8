package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xenn00/livestream-service/internal/websocket"
)

func SignalRouter(r chi.Router, wsHandler *websocket.WSHandler) {
	r.Get("/ws/rooms/{roomToken}", func(w http.ResponseWriter, req *http.Request) {
		roomToken := chi.URLParam(req, "roomToken")
		wsHandler.HandleWS(w, req, roomToken)
	})
}
