package room_dto

import (
	"time"

	"github.com/xenn00/livestream-service/internal/entity"
)

type RoomResponse struct {
	Token            string     `json:"token"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	OwnerName        string     `json:"ownerName"`
	OwnerID          string     `json:"ownerId"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	EndedAt          *time.Time `json:"endedAt,omitempty"`
	ParticipantCount int        `json:"participantCount"`
	MaxParticipants  int        `json:"maxParticipants"`
}

func ToRoomResponse(room *entity.Room) *RoomResponse {
	return &RoomResponse{
		Token:            room.Token,
		Name:             room.Name,
		Description:      room.Description,
		OwnerName:        room.OwnerName,
		OwnerID:          room.OwnerID,
		Status:           room.Status,
		CreatedAt:        room.CreatedAt,
		EndedAt:          room.EndedAt,
		ParticipantCount: room.ParticipantCount(),
		MaxParticipants:  room.MaxParticipants,
	}
}
