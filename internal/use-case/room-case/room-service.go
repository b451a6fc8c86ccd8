package room_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xenn00/livestream-service/internal/dtos/room_dto"
	"github.com/xenn00/livestream-service/internal/entity"
	app_error "github.com/xenn00/livestream-service/internal/errors"
	"github.com/xenn00/livestream-service/internal/queue"
	room_repo "github.com/xenn00/livestream-service/internal/repo/room"
	teacher_repo "github.com/xenn00/livestream-service/internal/repo/teacher"
)

// tokenRetries bounds the collision loop. With random uuid tokens a
// second collision is not a realistic outcome, the cap just keeps the
// loop finite.
const tokenRetries = 5

const archiveJobTTL = 24 * time.Hour

type RoomService struct {
	Rooms    room_repo.RoomRepoContract
	Teachers teacher_repo.TeacherRepoContract
	Producer queue.Producer
}

func NewRoomService(rooms room_repo.RoomRepoContract, teachers teacher_repo.TeacherRepoContract, producer queue.Producer) RoomServiceContract {
	return &RoomService{
		Rooms:    rooms,
		Teachers: teachers,
		Producer: producer,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, ownerID string, req room_dto.CreateRoomRequest) (*room_dto.RoomResponse, *app_error.AppError) {
	teacher, err := s.Teachers.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	maxParticipants := req.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = entity.DefaultMaxParticipants
	}

	var room *entity.Room
	for attempt := 0; attempt < tokenRetries; attempt++ {
		candidate := &entity.Room{
			Token:           uuid.NewString(),
			Name:            req.Name,
			Description:     req.Description,
			OwnerID:         teacher.ID,
			OwnerName:       teacher.FullName,
			Status:          entity.RoomStatusActive,
			MaxParticipants: maxParticipants,
			CreatedAt:       time.Now(),
		}

		ierr := s.Rooms.Insert(ctx, candidate)
		if ierr == nil {
			room = candidate
			break
		}
		if ierr.Kind != app_error.KindConflict {
			return nil, ierr
		}
		log.Warn().Str("roomToken", candidate.Token).Msg("room token collision, regenerating")
	}
	if room == nil {
		return nil, app_error.Internal("could not allocate a unique room token", "roomToken")
	}

	log.Info().Str("roomToken", room.Token).Str("ownerID", room.OwnerID).Int("maxParticipants", room.MaxParticipants).Msg("room created")
	s.enqueueArchive(ctx, room)

	return room_dto.ToRoomResponse(room), nil
}

func (s *RoomService) JoinRoom(ctx context.Context, roomToken, participantID string) (*room_dto.RoomResponse, *app_error.AppError) {
	room, err := s.Rooms.Join(ctx, roomToken, participantID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("roomToken", roomToken).Str("userID", participantID).Int("participants", room.ParticipantCount()).Msg("participant joined room")
	return room_dto.ToRoomResponse(room), nil
}

func (s *RoomService) LeaveRoom(ctx context.Context, roomToken, participantID string) *app_error.AppError {
	room, err := s.Rooms.Leave(ctx, roomToken, participantID)
	if err != nil {
		return err
	}

	log.Info().Str("roomToken", roomToken).Str("userID", participantID).Int("participants", room.ParticipantCount()).Msg("participant left room")
	return nil
}

func (s *RoomService) EndRoom(ctx context.Context, roomToken, requesterID string) (*room_dto.RoomResponse, *app_error.AppError) {
	room, err := s.Rooms.End(ctx, roomToken, requesterID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("roomToken", roomToken).Str("ownerID", requesterID).Msg("room ended")
	s.enqueueArchive(ctx, room)

	return room_dto.ToRoomResponse(room), nil
}

func (s *RoomService) GetRoom(ctx context.Context, roomToken string) (*room_dto.RoomResponse, *app_error.AppError) {
	room, err := s.Rooms.FindByToken(ctx, roomToken)
	if err != nil {
		return nil, err
	}
	return room_dto.ToRoomResponse(room), nil
}

func (s *RoomService) ListActiveRooms(ctx context.Context) ([]*room_dto.RoomResponse, *app_error.AppError) {
	rooms, err := s.Rooms.ListByStatus(ctx, entity.RoomStatusActive)
	if err != nil {
		return nil, err
	}
	return toResponses(rooms), nil
}

func (s *RoomService) ListRoomsForOwner(ctx context.Context, ownerID string) ([]*room_dto.RoomResponse, *app_error.AppError) {
	teacher, err := s.Teachers.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.Rooms.ListByOwner(ctx, teacher.ID, entity.RoomStatusActive)
	if err != nil {
		return nil, err
	}
	return toResponses(rooms), nil
}

// enqueueArchive hands the room snapshot to the write-behind archive.
// Queue trouble never fails the lifecycle operation.
func (s *RoomService) enqueueArchive(ctx context.Context, room *entity.Room) {
	if s.Producer == nil {
		return
	}

	now := time.Now()
	job := queue.Job{
		ID:        uuid.NewString(),
		Type:      queue.JobTypeRoomArchive,
		Payload:   queue.MustMarshal(room),
		MaxRetry:  5,
		CreatedAt: now.Unix(),
		ExpireAt:  now.Add(archiveJobTTL).Unix(),
	}

	if err := s.Producer.Enqueue(ctx, job); err != nil {
		log.Error().Err(err).Str("roomToken", room.Token).Msg("failed to enqueue room archive job")
	}
}

func toResponses(rooms []*entity.Room) []*room_dto.RoomResponse {
	responses := make([]*room_dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, room_dto.ToRoomResponse(room))
	}
	return responses
}
