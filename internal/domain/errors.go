package domain

import "errors"

var (
	// ErrInvalidInput is returned when a date, time, or room number fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRoomNotFound is returned when a room number is outside the catalog range.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomUnavailable is returned when a requested range overlaps an existing reservation.
	ErrRoomUnavailable = errors.New("room unavailable for requested dates")
	// ErrReservationNotFound is returned when no reservation matches a (username, room) pair.
	ErrReservationNotFound = errors.New("reservation not found")
)

var (
	// ErrUserNotFound is returned when looking up a non-existent user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the username/password combination is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrProtectedUser is returned when trying to delete the root admin account.
	ErrProtectedUser = errors.New("user is protected")
)
