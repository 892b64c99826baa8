// Package protocol defines the lobby wire contract: the flat JSON messages
// all participants exchange on the shared bus channel. Every frame carries a
// required "type" discriminant; receivers must discard frames for rooms they
// are not part of, and ignore unknown types without error.
package protocol

import (
	"encoding/json"

	"github.com/mememaster/lobby/internal/model"
)

// Message types
const (
	TypeJoinRequest  = "JOIN_REQUEST"
	TypeJoinAccepted = "JOIN_ACCEPTED"
	TypeGameStarted  = "GAME_STARTED"
)

// Message is a decoded lobby frame
type Message interface {
	// Type returns the wire discriminant
	Type() string
	// Room returns the room code the message is addressed to. The bus has
	// no unicast delivery, so addressing is by embedded room code only.
	Room() model.RoomCode
}

// JoinRequest is published by a guest asking to join a room
type JoinRequest struct {
	Name     string         `json:"name"`
	RoomCode model.RoomCode `json:"roomCode"`
	Avatar   model.Avatar   `json:"avatar"`
}

func (JoinRequest) Type() string { return TypeJoinRequest }

func (m JoinRequest) Room() model.RoomCode { return m.RoomCode }

// JoinAccepted is broadcast by a host after admitting a player. For guests
// the payload is informational only; no guest state change depends on it.
type JoinAccepted struct {
	PlayerID model.PlayerID `json:"playerId"`
	RoomCode model.RoomCode `json:"roomCode"`
}

func (JoinAccepted) Type() string { return TypeJoinAccepted }

func (m JoinAccepted) Room() model.RoomCode { return m.RoomCode }

// GameStarted is broadcast by a host when the game begins. It is the sole
// forward-progress signal for guests waiting on that room code.
type GameStarted struct {
	RoomCode model.RoomCode `json:"roomCode"`
}

func (GameStarted) Type() string { return TypeGameStarted }

func (m GameStarted) Room() model.RoomCode { return m.RoomCode }

// header is used to peek at the discriminant before full decoding
type header struct {
	Type string `json:"type"`
}

// Encode marshals a message into its wire frame with the type discriminant
func Encode(msg Message) ([]byte, error) {
	switch m := msg.(type) {
	case JoinRequest:
		return json.Marshal(struct {
			Type string `json:"type"`
			JoinRequest
		}{TypeJoinRequest, m})
	case JoinAccepted:
		return json.Marshal(struct {
			Type string `json:"type"`
			JoinAccepted
		}{TypeJoinAccepted, m})
	case GameStarted:
		return json.Marshal(struct {
			Type string `json:"type"`
			GameStarted
		}{TypeGameStarted, m})
	default:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{msg.Type()})
	}
}

// Decode parses a wire frame. Frames with an unknown type yield (nil, nil):
// they must be ignored without error. Malformed JSON is an error.
func Decode(data []byte) (Message, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}

	switch h.Type {
	case TypeJoinRequest:
		var m JoinRequest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	case TypeJoinAccepted:
		var m JoinAccepted
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	case TypeGameStarted:
		var m GameStarted
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, nil
	}
}
