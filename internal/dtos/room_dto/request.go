package room_dto

type CreateRoomRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	Description     string `json:"description" validate:"omitempty,max=1000"`
	MaxParticipants int    `json:"maxParticipants" validate:"omitempty,min=1,max=10000"`
}
