package domain

import "time"

type RoomID string

type RoomStatus string

const (
	RoomActive   RoomStatus = "active"
	RoomComplete RoomStatus = "complete"
)

func (s RoomStatus) Valid() bool {
	return s == RoomActive || s == RoomComplete
}

// Coord is a [latitude, longitude] pair, in that order. OSRM and Nominatim
// want lon,lat on the wire; conversion happens at the nav client.
type Coord [2]float64

func (c Coord) Lat() float64 { return c[0] }
func (c Coord) Lon() float64 { return c[1] }

type Room struct {
	ID          RoomID     `json:"room_id"`
	CreatorID   UserID     `json:"creator_id"`
	Destination string     `json:"destination"`
	StartCoord  Coord      `json:"start_coord"`
	DestCoord   Coord      `json:"dest_coord"`
	MaxMembers  int        `json:"max_members"`
	Members     []UserID   `json:"members"`
	Status      RoomStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HasMember reports whether id is currently in the member list.
func (r *Room) HasMember(id UserID) bool {
	for _, m := range r.Members {
		if m == id {
			return true
		}
	}
	return false
}

// Clone returns a copy safe to hand out after the registry lock is released.
func (r *Room) Clone() Room {
	out := *r
	out.Members = make([]UserID, len(r.Members))
	copy(out.Members, r.Members)
	return out
}

// RoomSnapshot is a read-only view of a room for events and API responses.
// CreatorName is best-effort enrichment; absent when the creator cannot be
// resolved.
type RoomSnapshot struct {
	Room
	CreatorName string `json:"creator_name,omitempty"`
}
