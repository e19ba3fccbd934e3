package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

func TestSignup(t *testing.T) {
	s := NewUserStore()

	u, err := s.Signup("John Doe", "John@MyLaurier.ca ", "securepass123")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "john@mylaurier.ca", u.Email)
	require.Equal(t, 1, s.Count())

	_, err = s.Signup("Jane", "jane@gmail.com", "securepass123")
	require.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = s.Signup("Jane", "jane@mylaurier.ca", "short")
	require.ErrorIs(t, err, domain.ErrWeakPassword)

	_, err = s.Signup("John Again", "john@mylaurier.ca", "securepass123")
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	s := NewUserStore()
	created, err := s.Signup("John Doe", "john@mylaurier.ca", "securepass123")
	require.NoError(t, err)

	u, err := s.Login("JOHN@mylaurier.ca", "securepass123")
	require.NoError(t, err)
	require.Equal(t, created.ID, u.ID)

	_, err = s.Login("john@mylaurier.ca", "wrongpassword")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = s.Login("nobody@mylaurier.ca", "securepass123")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestDisplayName(t *testing.T) {
	s := NewUserStore()
	u, err := s.Signup("John Doe", "john@mylaurier.ca", "securepass123")
	require.NoError(t, err)

	name, ok := s.DisplayName(u.ID)
	require.True(t, ok)
	require.Equal(t, "John Doe", name)

	_, ok = s.DisplayName("ghost")
	require.False(t, ok)
}
