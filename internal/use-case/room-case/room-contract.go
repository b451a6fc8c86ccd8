package room_service

import (
	"context"

	"github.com/xenn00/livestream-service/internal/dtos/room_dto"
	app_error "github.com/xenn00/livestream-service/internal/errors"
)

type RoomServiceContract interface {
	CreateRoom(ctx context.Context, ownerID string, req room_dto.CreateRoomRequest) (*room_dto.RoomResponse, *app_error.AppError)
	JoinRoom(ctx context.Context, roomToken, participantID string) (*room_dto.RoomResponse, *app_error.AppError)
	LeaveRoom(ctx context.Context, roomToken, participantID string) *app_error.AppError
	EndRoom(ctx context.Context, roomToken, requesterID string) (*room_dto.RoomResponse, *app_error.AppError)
	GetRoom(ctx context.Context, roomToken string) (*room_dto.RoomResponse, *app_error.AppError)
	ListActiveRooms(ctx context.Context) ([]*room_dto.RoomResponse, *app_error.AppError)
	ListRoomsForOwner(ctx context.Context, ownerID string) ([]*room_dto.RoomResponse, *app_error.AppError)
}
