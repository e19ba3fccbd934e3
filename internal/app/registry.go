package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

// Registry is the authoritative room map. All mutations run under a single
// write lock so that two joins racing for the last capacity slot cannot both
// win. Reads hand out clones, never live state.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*domain.Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomID]*domain.Room)}
}

func (r *Registry) Create(id domain.RoomID, creator domain.UserID, destination string, start, dest domain.Coord, maxMembers int) (domain.Room, error) {
	if maxMembers <= 0 {
		return domain.Room{}, domain.ErrInvalidCapacity
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rooms[id]; exists {
		return domain.Room{}, domain.ErrRoomExists
	}

	room := &domain.Room{
		ID:          id,
		CreatorID:   creator,
		Destination: destination,
		StartCoord:  start,
		DestCoord:   dest,
		MaxMembers:  maxMembers,
		Members:     []domain.UserID{creator},
		Status:      domain.RoomActive,
		CreatedAt:   time.Now().UTC(),
	}
	r.rooms[id] = room
	log.Info().Str("module", "app.registry").Str("room", string(id)).Str("creator", string(creator)).Msg("room created")
	return room.Clone(), nil
}

func (r *Registry) Get(id domain.RoomID) (domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room.Clone(), nil
}

// ListActive returns a snapshot of all rooms with status "active".
func (r *Registry) ListActive() []domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if room.Status == domain.RoomActive {
			out = append(out, room.Clone())
		}
	}
	return out
}

// Join adds user to the room. Repeat joins are a conflict, not a no-op.
func (r *Registry) Join(id domain.RoomID, user domain.UserID) (domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if room.HasMember(user) {
		return domain.Room{}, domain.ErrAlreadyMember
	}
	if len(room.Members) >= room.MaxMembers {
		return domain.Room{}, domain.ErrRoomFull
	}
	room.Members = append(room.Members, user)
	log.Info().Str("module", "app.registry").Str("room", string(id)).Str("user", string(user)).Msg("member joined")
	return room.Clone(), nil
}

// Leave removes user from the room. A room left empty flips to "complete".
func (r *Registry) Leave(id domain.RoomID, user domain.UserID) (domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	idx := -1
	for i, m := range room.Members {
		if m == user {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Room{}, domain.ErrNotMember
	}
	room.Members = append(room.Members[:idx], room.Members[idx+1:]...)
	if len(room.Members) == 0 {
		room.Status = domain.RoomComplete
	}
	log.Info().Str("module", "app.registry").Str("room", string(id)).Str("user", string(user)).Int("remaining", len(room.Members)).Msg("member left")
	return room.Clone(), nil
}

func (r *Registry) UpdateStatus(id domain.RoomID, status domain.RoomStatus) (domain.Room, error) {
	if !status.Valid() {
		return domain.Room{}, domain.ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	room.Status = status
	log.Info().Str("module", "app.registry").Str("room", string(id)).Str("status", string(status)).Msg("status updated")
	return room.Clone(), nil
}

// Delete removes the room. Only the creator may delete.
func (r *Registry) Delete(id domain.RoomID, requester domain.UserID) (domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if room.CreatorID != requester {
		return domain.Room{}, domain.ErrForbidden
	}
	delete(r.rooms, id)
	log.Info().Str("module", "app.registry").Str("room", string(id)).Msg("room deleted")
	return room.Clone(), nil
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
