package domain

import "time"

// Message is an immutable chat entry. Once appended to a room's log it is
// never mutated.
type Message struct {
	UserID    UserID    `json:"user_id"`
	Content   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Booking is a walk request used for buddy matching.
type Booking struct {
	ID                 string    `json:"booking_id"`
	UserID             UserID    `json:"user_id"`
	StartCoord         Coord     `json:"start_coord"`
	DestinationAddress string    `json:"destination_address"`
	DestCoord          Coord     `json:"dest_coord"`
	CreatedAt          time.Time `json:"timestamp"`
}

// BuddyMatch is another user whose start point is within matching range.
type BuddyMatch struct {
	UserID     UserID  `json:"user_id"`
	StartCoord Coord   `json:"start_coord"`
	DistanceKM float64 `json:"distance_km"`
}
