package entity

import "time"

const (
	RoomStatusActive = "ACTIVE"
	RoomStatusEnded  = "ENDED"
)

const DefaultMaxParticipants = 100

// Room is the snapshot form of a livestream room handed out by the store.
// Token is the public identifier; there is no separate numeric key.
// Participants is a copy of the membership set at read time.
type Room struct {
	Token           string     `json:"token" bson:"token"`
	Name            string     `json:"name" bson:"name"`
	Description     string     `json:"description,omitempty" bson:"description,omitempty"`
	OwnerID         string     `json:"owner_id" bson:"owner_id"`
	OwnerName       string     `json:"owner_name" bson:"owner_name"`
	Status          string     `json:"status" bson:"status"`
	MaxParticipants int        `json:"max_participants" bson:"max_participants"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
	Participants    []string   `json:"participants" bson:"participants"`
}

func (r *Room) ParticipantCount() int {
	return len(r.Participants)
}
