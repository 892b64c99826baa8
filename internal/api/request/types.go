package request

// CreateRoomRequest is the body for POST /api/v1/rooms
type CreateRoomRequest struct {
	Personality string `json:"personality"`
}

// JoinRoomRequest is the body for POST /api/v1/rooms/{code}/join.
// Avatar is optional; the relay picks one when it is absent.
type JoinRoomRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// StartGameRequest is the body for POST /api/v1/rooms/{code}/start.
// MinPlayers overrides the relay default when positive.
type StartGameRequest struct {
	MinPlayers int `json:"minPlayers,omitempty"`
}
