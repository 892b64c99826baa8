package model

import (
	"strings"
	"time"
)

// RoomCode is the short human-enterable identifier for a hosted session
type RoomCode string

// Normalize uppercases a code as typed by a guest. Codes are always
// compared in their normalized form.
func (c RoomCode) Normalize() RoomCode {
	return RoomCode(strings.ToUpper(string(c)))
}

// RoomState represents the lifecycle of a hosted room
type RoomState string

const (
	RoomStateOpen    RoomState = "open"    // accepting join requests
	RoomStateStarted RoomState = "started" // game started, roster frozen
)

// DefaultMinPlayers is the minimum roster size required to start a game
const DefaultMinPlayers = 3

// Room is one hosted lobby session. It exists only on the host device:
// created when hosting begins, destroyed when the host leaves or the game
// starts and ownership passes to the game phase.
type Room struct {
	Code        RoomCode    `json:"code"`
	State       RoomState   `json:"state"`
	Roster      []Player    `json:"roster"` // insertion-ordered, host-owned
	Personality Personality `json:"personality"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// HasPlayerNamed reports whether a roster entry already uses the exact name
func (r *Room) HasPlayerNamed(name string) bool {
	for i := range r.Roster {
		if r.Roster[i].Name == name {
			return true
		}
	}
	return false
}

// GetPlayer returns the roster entry with the given ID, or nil
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Roster {
		if r.Roster[i].ID == id {
			return &r.Roster[i]
		}
	}
	return nil
}
