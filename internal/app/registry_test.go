package app

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

func newTestRoom(t *testing.T, r *Registry, id string, creator string, capacity int) domain.Room {
	t.Helper()
	room, err := r.Create(domain.RoomID(id), domain.UserID(creator), "Library", domain.Coord{43.47, -80.53}, domain.Coord{43.48, -80.52}, capacity)
	require.NoError(t, err)
	return room
}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()

	room := newTestRoom(t, r, "r1", "alice", 5)
	require.Equal(t, domain.RoomID("r1"), room.ID)
	require.Equal(t, domain.UserID("alice"), room.CreatorID)
	require.Equal(t, []domain.UserID{"alice"}, room.Members)
	require.Equal(t, domain.RoomActive, room.Status)
	require.False(t, room.CreatedAt.IsZero())

	_, err := r.Create("r1", "bob", "Gym", domain.Coord{}, domain.Coord{}, 5)
	require.ErrorIs(t, err, domain.ErrRoomExists)

	_, err = r.Create("r2", "bob", "Gym", domain.Coord{}, domain.Coord{}, 0)
	require.ErrorIs(t, err, domain.ErrInvalidCapacity)
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "r1", "alice", 5)

	room, err := r.Get("r1")
	require.NoError(t, err)

	// Mutating the returned copy must not leak into the registry.
	room.Members = append(room.Members, "mallory")
	again, err := r.Get("r1")
	require.NoError(t, err)
	require.Equal(t, []domain.UserID{"alice"}, again.Members)

	_, err = r.Get("nope")
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRegistryJoin(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "r1", "alice", 2)

	room, err := r.Join("r1", "bob")
	require.NoError(t, err)
	require.Equal(t, []domain.UserID{"alice", "bob"}, room.Members)

	_, err = r.Join("r1", "bob")
	require.ErrorIs(t, err, domain.ErrAlreadyMember)

	_, err = r.Join("r1", "carol")
	require.ErrorIs(t, err, domain.ErrRoomFull)

	_, err = r.Join("nope", "bob")
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRegistryConcurrentJoinLastSlot(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "r1", "alice", 2)

	joiners := []domain.UserID{"bob", "carol"}
	errs := make([]error, len(joiners))
	var wg sync.WaitGroup
	for i, u := range joiners {
		wg.Add(1)
		go func(i int, u domain.UserID) {
			defer wg.Done()
			_, errs[i] = r.Join("r1", u)
		}(i, u)
	}
	wg.Wait()

	var wins, fulls int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case err == domain.ErrRoomFull:
			fulls++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, fulls)

	room, err := r.Get("r1")
	require.NoError(t, err)
	require.LessOrEqual(t, len(room.Members), room.MaxMembers)
}

func TestRegistryCapacityInvariantUnderLoad(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "r1", "alice", 5)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Join("r1", domain.UserID(fmt.Sprintf("user-%d", i)))
		}(i)
	}
	wg.Wait()

	room, err := r.Get("r1")
	require.NoError(t, err)
	require.Len(t, room.Members, 5)
}

func TestRegistryLeave(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "r1", "alice", 3)
	_, err := r.Join("r1", "bob")
	require.NoError(t, err)

	room, err := r.Leave("r1", "alice")
	require.NoError(t, err)
	require.Equal(t, []domain.UserID{"bob"}, room.Members)
	require.Equal(t, domain.RoomActive, room.Status)

	room, err = r.Leave("r1", "bob")
	require.NoError(t, err)
	require.Empty(t, room.Members)
	require.Equal(t, domain.RoomComplete, room.Status)

	_, err = r.Leave("r1", "bob")
	require.ErrorIs(t, err, domain.ErrNotMember)

	_, err = r.Leave("nope", "bob")
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRegistryUpdateStatus(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "r1", "alice", 3)

	room, err := r.UpdateStatus("r1", domain.RoomComplete)
	require.NoError(t, err)
	require.Equal(t, domain.RoomComplete, room.Status)

	_, err = r.UpdateStatus("r1", "done")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = r.UpdateStatus("nope", domain.RoomActive)
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "r1", "alice", 3)

	_, err := r.Delete("r1", "bob")
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = r.Delete("r1", "alice")
	require.NoError(t, err)

	_, err = r.Get("r1")
	require.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = r.Delete("r1", "alice")
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRegistryListActive(t *testing.T) {
	r := NewRegistry()
	newTestRoom(t, r, "r1", "alice", 3)
	newTestRoom(t, r, "r2", "bob", 3)

	_, err := r.UpdateStatus("r2", domain.RoomComplete)
	require.NoError(t, err)

	active := r.ListActive()
	require.Len(t, active, 1)
	require.Equal(t, domain.RoomID("r1"), active[0].ID)
}
