package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

func TestChatLogAppend(t *testing.T) {
	s := NewChatLogStore()
	s.CreateLog("r1")

	msg, err := s.Append("r1", "bob", "  hi there  ")
	require.NoError(t, err)
	require.Equal(t, "hi there", msg.Content)
	require.Equal(t, domain.UserID("bob"), msg.UserID)
	require.False(t, msg.Timestamp.IsZero())

	_, err = s.Append("r1", "bob", "   ")
	require.ErrorIs(t, err, domain.ErrEmptyContent)

	_, err = s.Append("nope", "bob", "hi")
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestChatLogMessagesLimit(t *testing.T) {
	s := NewChatLogStore()
	s.CreateLog("r1")
	for i := 0; i < 10; i++ {
		_, err := s.Append("r1", "bob", fmt.Sprintf("msg-%d", i))
		require.NoError(t, err)
	}

	msgs, err := s.Messages("r1", 3)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "msg-7", msgs[0].Content)
	require.Equal(t, "msg-9", msgs[2].Content)

	all, err := s.Messages("r1", 0)
	require.NoError(t, err)
	require.Len(t, all, 10)

	more, err := s.Messages("r1", 50)
	require.NoError(t, err)
	require.Len(t, more, 10)

	_, err = s.Messages("nope", 5)
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestChatLogClear(t *testing.T) {
	s := NewChatLogStore()
	s.CreateLog("r1")
	_, err := s.Append("r1", "bob", "hi")
	require.NoError(t, err)

	require.NoError(t, s.Clear("r1"))
	msgs, err := s.Messages("r1", 50)
	require.NoError(t, err)
	require.Empty(t, msgs)

	// Clearing an already-empty log is fine.
	require.NoError(t, s.Clear("r1"))

	require.ErrorIs(t, s.Clear("nope"), domain.ErrRoomNotFound)
}

func TestChatLogRemove(t *testing.T) {
	s := NewChatLogStore()
	s.CreateLog("r1")
	s.Remove("r1")

	_, err := s.Messages("r1", 5)
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}
