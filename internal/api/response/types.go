package response

import "github.com/mememaster/lobby/internal/model"

// RoomResponse describes a room and its live roster
type RoomResponse struct {
	Code        model.RoomCode    `json:"code"`
	State       model.RoomState   `json:"state"`
	Personality model.Personality `json:"personality"`
	Roster      []model.Player    `json:"roster"`
}

// NewRoomResponse converts a room to its API shape
func NewRoomResponse(room *model.Room) RoomResponse {
	roster := room.Roster
	if roster == nil {
		roster = []model.Player{}
	}
	return RoomResponse{
		Code:        room.Code,
		State:       room.State,
		Personality: room.Personality,
		Roster:      roster,
	}
}

// JoinResponse reports an admitted player
type JoinResponse struct {
	Player model.Player   `json:"player"`
	Code   model.RoomCode `json:"code"`
}

// PersonalitiesResponse lists the judge catalog
type PersonalitiesResponse struct {
	Personalities []model.PersonalityInfo `json:"personalities"`
}

// ImageResponse carries an acquired image as a data URL
type ImageResponse struct {
	DataURL string `json:"dataUrl"`
}
