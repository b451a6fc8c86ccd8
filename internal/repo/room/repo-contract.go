package room_repo

import (
	"context"

	"github.com/xenn00/livestream-service/internal/entity"
	app_error "github.com/xenn00/livestream-service/internal/errors"
)

// RoomRepoContract is the room store consulted by both the lifecycle
// use-case and the signaling layer. Join/Leave/End run their status,
// capacity and owner checks inside the room's critical section, so two
// racing joins against the last free slot cannot both win.
type RoomRepoContract interface {
	Insert(ctx context.Context, room *entity.Room) *app_error.AppError
	FindByToken(ctx context.Context, token string) (*entity.Room, *app_error.AppError)
	Join(ctx context.Context, token, participantID string) (*entity.Room, *app_error.AppError)
	Leave(ctx context.Context, token, participantID string) (*entity.Room, *app_error.AppError)
	End(ctx context.Context, token, requesterID string) (*entity.Room, *app_error.AppError)
	ListByStatus(ctx context.Context, status string) ([]*entity.Room, *app_error.AppError)
	ListByOwner(ctx context.Context, ownerID, status string) ([]*entity.Room, *app_error.AppError)
}
