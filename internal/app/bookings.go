package app

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
	"github.com/KeithOruwari19/walkingbuddy/internal/nav"
)

// MatchDistanceKM is the radius within which two start points count as a
// buddy match.
const MatchDistanceKM = 1.0

// BookingBoard stores walk bookings and matches users whose start points are
// close to each other.
type BookingBoard struct {
	mu       sync.RWMutex
	bookings []domain.Booking
}

func NewBookingBoard() *BookingBoard {
	return &BookingBoard{}
}

// Book records a walk request and returns prior bookings by other users whose
// start point lies within MatchDistanceKM. The new booking is matched against
// the state before it is stored, so a user never matches themselves.
func (b *BookingBoard) Book(user domain.UserID, start domain.Coord, destAddress string, dest domain.Coord) (domain.Booking, []domain.BuddyMatch) {
	booking := domain.Booking{
		ID:                 uuid.NewString(),
		UserID:             user,
		StartCoord:         start,
		DestinationAddress: destAddress,
		DestCoord:          dest,
		CreatedAt:          time.Now().UTC(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	matches := []domain.BuddyMatch{}
	for _, prev := range b.bookings {
		if prev.UserID == user {
			continue
		}
		dist := nav.HaversineKM(start, prev.StartCoord)
		if dist <= MatchDistanceKM {
			matches = append(matches, domain.BuddyMatch{
				UserID:     prev.UserID,
				StartCoord: prev.StartCoord,
				DistanceKM: dist,
			})
		}
	}
	b.bookings = append(b.bookings, booking)
	log.Info().Str("module", "app.bookings").Str("user", string(user)).Int("matches", len(matches)).Msg("walk booked")
	return booking, matches
}

// ListByUser returns the user's bookings, newest first.
func (b *BookingBoard) ListByUser(user domain.UserID) []domain.Booking {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := []domain.Booking{}
	for _, bk := range b.bookings {
		if bk.UserID == user {
			out = append(out, bk)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
