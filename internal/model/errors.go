package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomStarted         = errors.New("game already started in this room")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")

	// Join input errors (caught locally, nothing published)
	ErrEmptyCode = errors.New("room code must not be empty")
	ErrEmptyName = errors.New("display name must not be empty")

	// Judge errors
	ErrUnknownPersonality = errors.New("unknown judge personality")

	// Session errors
	ErrInvalidTransition = errors.New("action not valid in current lobby state")
	ErrSessionClosed     = errors.New("lobby session has been closed")
)
