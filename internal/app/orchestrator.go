package app

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
	"github.com/KeithOruwari19/walkingbuddy/internal/metrics"
)

// Orchestrator composes the stores and the hub into one coordinated operation
// per request: resolve identity, mutate, enrich the snapshot, broadcast.
// The mutation is the transaction boundary; enrichment and broadcast are
// fire-and-forget and never roll it back.
//
// Mutating operations share commitMu so that, for any one room, events reach
// the hub queue in the order the mutations committed. Reads bypass commitMu
// and rely on the stores' own read locks.
type Orchestrator struct {
	commitMu sync.Mutex

	Users    *UserStore
	Rooms    *Registry
	Chat     *ChatLogStore
	Hub      *Hub
	Bookings *BookingBoard
}

func NewOrchestrator(users *UserStore, rooms *Registry, chat *ChatLogStore, hub *Hub, bookings *BookingBoard) *Orchestrator {
	return &Orchestrator{
		Users:    users,
		Rooms:    rooms,
		Chat:     chat,
		Hub:      hub,
		Bookings: bookings,
	}
}

// ResolveIdentity turns caller credentials into a stable identity. The
// session-bound identity wins over an explicit user_id field; an identity
// that trims to nothing is never valid.
func (o *Orchestrator) ResolveIdentity(session, explicit domain.UserID) (domain.UserID, error) {
	if domain.ValidIdentity(session) {
		return domain.UserID(strings.TrimSpace(string(session))), nil
	}
	if domain.ValidIdentity(explicit) {
		return domain.UserID(strings.TrimSpace(string(explicit))), nil
	}
	return "", domain.ErrUnauthenticated
}

// NewRoomID mints a short room identifier, uuid-derived.
func NewRoomID() domain.RoomID {
	return domain.RoomID(uuid.NewString()[:8])
}

func (o *Orchestrator) CreateRoom(creator domain.UserID, destination string, start, dest domain.Coord, maxMembers int) (domain.RoomSnapshot, error) {
	if !domain.ValidIdentity(creator) {
		return domain.RoomSnapshot{}, domain.ErrUnauthenticated
	}

	o.commitMu.Lock()
	defer o.commitMu.Unlock()

	var room domain.Room
	var err error
	// Short ids can collide; retry with a fresh id instead of failing the
	// caller for bad luck.
	for attempt := 0; attempt < 3; attempt++ {
		room, err = o.Rooms.Create(NewRoomID(), creator, destination, start, dest, maxMembers)
		if err != domain.ErrRoomExists {
			break
		}
	}
	if err != nil {
		return domain.RoomSnapshot{}, err
	}

	o.Chat.CreateLog(room.ID)
	snap := o.snapshot(room)
	o.Hub.Broadcast(Event{Type: EventRoomNew, Room: snap})
	metrics.RoomsCreated.Inc()
	return snap, nil
}

func (o *Orchestrator) ListRooms() []domain.RoomSnapshot {
	rooms := o.Rooms.ListActive()
	out := make([]domain.RoomSnapshot, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, o.snapshot(room))
	}
	return out
}

func (o *Orchestrator) GetRoom(id domain.RoomID) (domain.RoomSnapshot, error) {
	room, err := o.Rooms.Get(id)
	if err != nil {
		return domain.RoomSnapshot{}, err
	}
	return o.snapshot(room), nil
}

func (o *Orchestrator) JoinRoom(user domain.UserID, id domain.RoomID) (domain.RoomSnapshot, error) {
	if !domain.ValidIdentity(user) {
		return domain.RoomSnapshot{}, domain.ErrUnauthenticated
	}

	o.commitMu.Lock()
	defer o.commitMu.Unlock()

	room, err := o.Rooms.Join(id, user)
	if err != nil {
		return domain.RoomSnapshot{}, err
	}
	snap := o.snapshot(room)
	o.Hub.Broadcast(Event{Type: EventRoomJoin, Room: snap})
	metrics.RoomJoins.Inc()
	return snap, nil
}

func (o *Orchestrator) LeaveRoom(user domain.UserID, id domain.RoomID) (domain.RoomSnapshot, error) {
	if !domain.ValidIdentity(user) {
		return domain.RoomSnapshot{}, domain.ErrUnauthenticated
	}

	o.commitMu.Lock()
	defer o.commitMu.Unlock()

	room, err := o.Rooms.Leave(id, user)
	if err != nil {
		return domain.RoomSnapshot{}, err
	}
	snap := o.snapshot(room)
	o.Hub.Broadcast(Event{Type: EventRoomLeave, Room: snap})
	return snap, nil
}

// UpdateRoomStatus is creator-only. The original system let any caller flip
// room status; that gap is closed here.
func (o *Orchestrator) UpdateRoomStatus(user domain.UserID, id domain.RoomID, status domain.RoomStatus) (domain.RoomSnapshot, error) {
	if !domain.ValidIdentity(user) {
		return domain.RoomSnapshot{}, domain.ErrUnauthenticated
	}

	o.commitMu.Lock()
	defer o.commitMu.Unlock()

	current, err := o.Rooms.Get(id)
	if err != nil {
		return domain.RoomSnapshot{}, err
	}
	if current.CreatorID != user {
		return domain.RoomSnapshot{}, domain.ErrForbidden
	}

	room, err := o.Rooms.UpdateStatus(id, status)
	if err != nil {
		return domain.RoomSnapshot{}, err
	}
	snap := o.snapshot(room)
	o.Hub.Broadcast(Event{Type: EventRoomUpdate, Room: snap})
	return snap, nil
}

func (o *Orchestrator) DeleteRoom(user domain.UserID, id domain.RoomID) (domain.RoomSnapshot, error) {
	if !domain.ValidIdentity(user) {
		return domain.RoomSnapshot{}, domain.ErrUnauthenticated
	}

	o.commitMu.Lock()
	defer o.commitMu.Unlock()

	room, err := o.Rooms.Delete(id, user)
	if err != nil {
		return domain.RoomSnapshot{}, err
	}
	o.Chat.Remove(id)
	snap := o.snapshot(room)
	o.Hub.Broadcast(Event{Type: EventRoomDelete, Room: snap})
	return snap, nil
}

// SendMessage requires current membership. The membership check and the
// append are separate store operations; a concurrent leave can slip between
// them, which is an accepted staleness window, not a correctness violation.
func (o *Orchestrator) SendMessage(user domain.UserID, id domain.RoomID, content string) (domain.Message, error) {
	if !domain.ValidIdentity(user) {
		return domain.Message{}, domain.ErrUnauthenticated
	}

	o.commitMu.Lock()
	defer o.commitMu.Unlock()

	room, err := o.Rooms.Get(id)
	if err != nil {
		return domain.Message{}, err
	}
	if !room.HasMember(user) {
		return domain.Message{}, domain.ErrNotMember
	}

	msg, err := o.Chat.Append(id, user, content)
	if err != nil {
		return domain.Message{}, err
	}
	snap := o.snapshot(room)
	o.Hub.Broadcast(Event{Type: EventChatMessage, Room: snap, Message: &msg})
	metrics.MessagesPosted.Inc()
	return msg, nil
}

func (o *Orchestrator) GetMessages(id domain.RoomID, limit int) ([]domain.Message, error) {
	return o.Chat.Messages(id, limit)
}

// ClearMessages is creator-only.
func (o *Orchestrator) ClearMessages(user domain.UserID, id domain.RoomID) error {
	if !domain.ValidIdentity(user) {
		return domain.ErrUnauthenticated
	}

	o.commitMu.Lock()
	defer o.commitMu.Unlock()

	room, err := o.Rooms.Get(id)
	if err != nil {
		return err
	}
	if room.CreatorID != user {
		return domain.ErrForbidden
	}
	return o.Chat.Clear(id)
}

// snapshot enriches a room copy with the creator's display name. Resolution
// failure leaves the field absent and is a normal outcome.
func (o *Orchestrator) snapshot(room domain.Room) domain.RoomSnapshot {
	snap := domain.RoomSnapshot{Room: room}
	if name, ok := o.Users.DisplayName(room.CreatorID); ok {
		snap.CreatorName = name
	} else {
		log.Debug().Str("module", "app.orchestrator").Str("creator", string(room.CreatorID)).Msg("creator name not resolvable")
	}
	return snap
}
