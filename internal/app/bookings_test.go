package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

// Coordinates around the Laurier Waterloo campus; b is roughly 500 m from a,
// c is kilometres away.
var (
	coordA = domain.Coord{43.4723, -80.5262}
	coordB = domain.Coord{43.4765, -80.5270}
	coordC = domain.Coord{43.5500, -80.2500}
)

func TestBookMatchesNearbyStarts(t *testing.T) {
	b := NewBookingBoard()

	_, matches := b.Book("alice", coordA, "Library", coordC)
	require.Empty(t, matches)

	_, matches = b.Book("bob", coordB, "Library", coordC)
	require.Len(t, matches, 1)
	require.Equal(t, domain.UserID("alice"), matches[0].UserID)
	require.Less(t, matches[0].DistanceKM, MatchDistanceKM)

	_, matches = b.Book("carol", coordC, "Gym", coordA)
	require.Empty(t, matches)
}

func TestBookNeverMatchesSelf(t *testing.T) {
	b := NewBookingBoard()
	b.Book("alice", coordA, "Library", coordC)
	_, matches := b.Book("alice", coordA, "Gym", coordB)
	require.Empty(t, matches)
}

func TestListByUserNewestFirst(t *testing.T) {
	b := NewBookingBoard()
	b.Book("alice", coordA, "Library", coordC)
	b.Book("bob", coordB, "Gym", coordC)
	b.Book("alice", coordB, "Gym", coordC)

	mine := b.ListByUser("alice")
	require.Len(t, mine, 2)
	require.Equal(t, "Gym", mine[0].DestinationAddress)
	require.False(t, mine[0].CreatedAt.Before(mine[1].CreatedAt))

	require.Empty(t, b.ListByUser("nobody"))
}
