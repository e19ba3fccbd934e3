package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")

	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomExists    = errors.New("room already exists")
	ErrAlreadyMember = errors.New("already a member of room")
	ErrNotMember     = errors.New("not a member of room")
	ErrRoomFull      = errors.New("room is full")

	ErrEmptyContent    = errors.New("message content empty")
	ErrInvalidCapacity = errors.New("max_members must be positive")
	ErrInvalidStatus   = errors.New("invalid room status")

	ErrInvalidEmail       = errors.New("laurier email (@mylaurier.ca) required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)
