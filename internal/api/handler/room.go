package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/mememaster/lobby/internal/api/request"
	"github.com/mememaster/lobby/internal/api/response"
	"github.com/mememaster/lobby/internal/bus"
	"github.com/mememaster/lobby/internal/dependencies/random"
	"github.com/mememaster/lobby/internal/lobby"
	"github.com/mememaster/lobby/internal/model"
	"github.com/mememaster/lobby/internal/protocol"
)

// RoomHandler exposes room lifecycle operations over HTTP. It plays the
// host's side of the protocol on behalf of remote clients: admissions and
// starts performed here are published on the bus so every attached
// subscriber (event streams, websocket bridges) observes them.
type RoomHandler struct {
	mgr        *lobby.Manager
	conn       *bus.Conn
	random     random.Random
	minPlayers int

	// Admissions are serialized, as they are in a host session's loop
	admitMu sync.Mutex
}

// NewRoomHandler creates a room handler publishing on the given bus connection
func NewRoomHandler(mgr *lobby.Manager, conn *bus.Conn, rnd random.Random, minPlayers int) *RoomHandler {
	if minPlayers <= 0 {
		minPlayers = model.DefaultMinPlayers
	}
	return &RoomHandler{
		mgr:        mgr,
		conn:       conn,
		random:     rnd,
		minPlayers: minPlayers,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}

	room, err := h.mgr.CreateRoom(r.Context(), model.Personality(req.Personality))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.NewRoomResponse(room))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	room, err := h.mgr.GetRoom(r.Context(), roomCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewRoomResponse(room))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.Name == "" {
		WriteError(w, model.ErrEmptyName)
		return
	}

	avatar := model.Avatar(req.Avatar)
	if avatar == "" {
		avatar = model.RandomAvatar(h.random)
	}

	code := roomCode(r)

	h.admitMu.Lock()
	player, err := h.mgr.Admit(r.Context(), code, req.Name, avatar)
	h.admitMu.Unlock()
	if err != nil {
		WriteError(w, err)
		return
	}

	h.conn.Send(protocol.JoinAccepted{PlayerID: player.ID, RoomCode: code})
	response.JSON(w, http.StatusOK, response.JoinResponse{Player: *player, Code: code})
}

// Start handles POST /api/v1/rooms/{code}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for the default minimum
		req = request.StartGameRequest{}
	}

	minPlayers := h.minPlayers
	if req.MinPlayers > 0 {
		minPlayers = req.MinPlayers
	}

	code := roomCode(r)
	room, err := h.mgr.StartGame(r.Context(), code, minPlayers)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.conn.Send(protocol.GameStarted{RoomCode: code})
	response.JSON(w, http.StatusOK, response.NewRoomResponse(room))
}

// Close handles DELETE /api/v1/rooms/{code}. As with a host leaving its
// lobby, nothing is broadcast: waiting guests are not notified.
func (h *RoomHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.mgr.CloseRoom(r.Context(), roomCode(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Personalities handles GET /api/v1/personalities
func (h *RoomHandler) Personalities(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.PersonalitiesResponse{
		Personalities: model.Personalities,
	})
}

// roomCode extracts and normalizes the room code path variable
func roomCode(r *http.Request) model.RoomCode {
	return model.RoomCode(mux.Vars(r)["code"]).Normalize()
}
