package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xenn00/livestream-service/internal/handlers"
	hub_handler "github.com/xenn00/livestream-service/internal/handlers/hub-handler"
	"github.com/xenn00/livestream-service/internal/middleware"
	room_service "github.com/xenn00/livestream-service/internal/use-case/room-case"
	"github.com/xenn00/livestream-service/internal/websocket"
	"github.com/xenn00/livestream-service/state"
)

func NewRouter(state *state.AppState, roomService room_service.RoomServiceContract, wsHandler *websocket.WSHandler, hub *websocket.Hub, sessions *websocket.SessionDirectory) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)

	hubHandler := hub_handler.NewHubHandler(hub, sessions)
	r.Get("/api/v1/health", hubHandler.HandleHealth)
	r.Get("/api/v1/stats", handlers.WrapHandler(hubHandler.HandleGetStats))

	RoomRouter(r, state, roomService)
	SignalRouter(r, wsHandler)
	return r
}
