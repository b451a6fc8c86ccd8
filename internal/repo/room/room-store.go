package room_repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xenn00/livestream-service/internal/entity"
	app_error "github.com/xenn00/livestream-service/internal/errors"
)

// roomRecord is the live form of a room. record.mu serializes every
// mutation of a single room; the store-level lock only guards the map
// itself, so unrelated rooms never contend.
type roomRecord struct {
	mu           sync.Mutex
	room         entity.Room
	participants map[string]struct{}
}

type MemoryRoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*roomRecord
}

func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{
		rooms: make(map[string]*roomRecord),
	}
}

// snapshot must be called with rec.mu held.
func (rec *roomRecord) snapshot() *entity.Room {
	room := rec.room
	room.Participants = make([]string, 0, len(rec.participants))
	for id := range rec.participants {
		room.Participants = append(room.Participants, id)
	}
	sort.Strings(room.Participants)
	return &room
}

func (s *MemoryRoomStore) get(token string) (*roomRecord, *app_error.AppError) {
	s.mu.RLock()
	rec, ok := s.rooms[token]
	s.mu.RUnlock()
	if !ok {
		return nil, app_error.NotFound("room not found", "roomToken")
	}
	return rec, nil
}

func (s *MemoryRoomStore) Insert(ctx context.Context, room *entity.Room) *app_error.AppError {
	rec := &roomRecord{
		room:         *room,
		participants: make(map[string]struct{}, len(room.Participants)),
	}
	for _, id := range room.Participants {
		rec.participants[id] = struct{}{}
	}
	rec.room.Participants = nil

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[room.Token]; exists {
		return app_error.Conflict("room token already in use", "roomToken")
	}
	s.rooms[room.Token] = rec
	return nil
}

func (s *MemoryRoomStore) FindByToken(ctx context.Context, token string) (*entity.Room, *app_error.AppError) {
	rec, err := s.get(token)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.snapshot(), nil
}

func (s *MemoryRoomStore) Join(ctx context.Context, token, participantID string) (*entity.Room, *app_error.AppError) {
	rec, err := s.get(token)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.room.Status != entity.RoomStatusActive {
		return nil, app_error.InvalidState("room has ended", "roomToken")
	}

	// Re-joining is a no-op: the set absorbs duplicates and the capacity
	// check must not count an existing member twice.
	if _, member := rec.participants[participantID]; member {
		return rec.snapshot(), nil
	}

	if len(rec.participants) >= rec.room.MaxParticipants {
		return nil, app_error.CapacityExceeded("room is full", "roomToken")
	}

	rec.participants[participantID] = struct{}{}
	return rec.snapshot(), nil
}

func (s *MemoryRoomStore) Leave(ctx context.Context, token, participantID string) (*entity.Room, *app_error.AppError) {
	rec, err := s.get(token)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	// Removing a non-member is a no-op success. An empty ACTIVE room
	// stays valid until the owner ends it.
	delete(rec.participants, participantID)
	return rec.snapshot(), nil
}

func (s *MemoryRoomStore) End(ctx context.Context, token, requesterID string) (*entity.Room, *app_error.AppError) {
	rec, err := s.get(token)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.room.OwnerID != requesterID {
		return nil, app_error.Forbidden("only the room owner can end it", "roomToken")
	}

	if rec.room.Status == entity.RoomStatusEnded {
		// Idempotent for the owner: terminal state re-returned as-is,
		// end timestamp untouched.
		return rec.snapshot(), nil
	}

	now := time.Now()
	rec.room.Status = entity.RoomStatusEnded
	rec.room.EndedAt = &now
	return rec.snapshot(), nil
}

func (s *MemoryRoomStore) ListByStatus(ctx context.Context, status string) ([]*entity.Room, *app_error.AppError) {
	s.mu.RLock()
	recs := make([]*roomRecord, 0, len(s.rooms))
	for _, rec := range s.rooms {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	rooms := make([]*entity.Room, 0, len(recs))
	for _, rec := range recs {
		rec.mu.Lock()
		if rec.room.Status == status {
			rooms = append(rooms, rec.snapshot())
		}
		rec.mu.Unlock()
	}

	sortRooms(rooms)
	return rooms, nil
}

func (s *MemoryRoomStore) ListByOwner(ctx context.Context, ownerID, status string) ([]*entity.Room, *app_error.AppError) {
	s.mu.RLock()
	recs := make([]*roomRecord, 0, len(s.rooms))
	for _, rec := range s.rooms {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	rooms := make([]*entity.Room, 0)
	for _, rec := range recs {
		rec.mu.Lock()
		if rec.room.OwnerID == ownerID && rec.room.Status == status {
			rooms = append(rooms, rec.snapshot())
		}
		rec.mu.Unlock()
	}

	sortRooms(rooms)
	return rooms, nil
}

// sortRooms orders by creation time, token as tie-break, so the result
// is a deterministic function of store state.
func sortRooms(rooms []*entity.Room) {
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].Token < rooms[j].Token
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
}
