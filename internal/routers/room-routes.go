package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/xenn00/livestream-service/internal/handlers"
	room_handler "github.com/xenn00/livestream-service/internal/handlers/room-handler"
	"github.com/xenn00/livestream-service/internal/middleware"
	room_service "github.com/xenn00/livestream-service/internal/use-case/room-case"
	"github.com/xenn00/livestream-service/state"
)

func RoomRouter(r chi.Router, state *state.AppState, service room_service.RoomServiceContract) {
	roomHandler := room_handler.NewRoomHandler(service)
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(state.JwtSecret.Public))
		protected.Post("/api/v1/rooms", handlers.WrapHandler(roomHandler.CreateRoom))
		protected.Get("/api/v1/rooms/active", handlers.WrapHandler(roomHandler.ListActiveRooms))
		protected.Get("/api/v1/rooms/my-rooms", handlers.WrapHandler(roomHandler.ListMyRooms))
		protected.Get("/api/v1/rooms/{roomToken}", handlers.WrapHandler(roomHandler.GetRoom))
		protected.Post("/api/v1/rooms/{roomToken}/join", handlers.WrapHandler(roomHandler.JoinRoom))
		protected.Post("/api/v1/rooms/{roomToken}/leave", handlers.WrapHandler(roomHandler.LeaveRoom))
		protected.Post("/api/v1/rooms/{roomToken}/end", handlers.WrapHandler(roomHandler.EndRoom))
	})
}
