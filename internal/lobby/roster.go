package lobby

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mememaster/lobby/internal/dependencies/clock"
	"github.com/mememaster/lobby/internal/dependencies/random"
	"github.com/mememaster/lobby/internal/model"
	"github.com/mememaster/lobby/internal/storage"
)

// playerIDLength and playerIDAlphabet shape generated player identifiers.
// IDs only need to be unique within one room's roster.
const (
	playerIDLength   = 12
	playerIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Manager is the host-side authority over a room's canonical roster. All
// mutations flow through it; guests never touch the roster directly.
type Manager struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewManager creates a roster Manager
func NewManager(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "roster")),
	}
}

// CreateRoom creates a new hosted room with an empty roster. The code is
// generated once and trusted to be probably unique; there is no registry of
// concurrently active rooms to check against.
func (m *Manager) CreateRoom(ctx context.Context, personality model.Personality) (*model.Room, error) {
	if !model.ValidPersonality(personality) {
		return nil, model.ErrUnknownPersonality
	}

	now := m.clock.Now()
	room := &model.Room{
		Code:        GenerateCode(m.random),
		State:       model.RoomStateOpen,
		Roster:      []model.Player{},
		Personality: personality,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	m.logger.Info("room created", slog.String("code", string(room.Code)))
	return room, nil
}

// GetRoom retrieves a room by code
func (m *Manager) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return m.storage.GetRoom(ctx, code)
}

// Admit validates a join request against the room and appends a new player
// to the roster. On a display-name collision the incoming name gets a random
// numeric suffix; the stored name is authoritative from then on. Admission is
// never idempotent: every call appends a fresh player, including repeated
// submissions from the same guest.
//
// Callers must serialize Admit calls per room (the session event loop does),
// otherwise two racing same-name admissions could both pass the collision
// check against a stale roster.
func (m *Manager) Admit(ctx context.Context, code model.RoomCode, requestedName string, avatar model.Avatar) (*model.Player, error) {
	room, err := m.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.State != model.RoomStateOpen {
		return nil, model.ErrRoomStarted
	}

	finalName := requestedName
	if room.HasPlayerNamed(requestedName) {
		finalName = fmt.Sprintf("%s %d", requestedName, m.random.Intn(100))
	}

	player := model.Player{
		ID:     model.PlayerID(m.random.String(playerIDLength, playerIDAlphabet)),
		Name:   finalName,
		Score:  0,
		Avatar: avatar,
	}

	room.Roster = append(room.Roster, player)
	room.UpdatedAt = m.clock.Now()

	if err := m.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	m.logger.Info("player admitted",
		slog.String("code", string(code)),
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name),
		slog.Int("roster_size", len(room.Roster)))
	return &player, nil
}

// StartGame freezes the roster and marks the room started. Fails with
// ErrInsufficientPlayers, mutating nothing, when the roster is below
// minPlayers. The returned room carries the frozen roster and selected
// personality for the game-start hand-off.
func (m *Manager) StartGame(ctx context.Context, code model.RoomCode, minPlayers int) (*model.Room, error) {
	room, err := m.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.State != model.RoomStateOpen {
		return nil, model.ErrRoomStarted
	}

	if len(room.Roster) < minPlayers {
		return nil, model.ErrInsufficientPlayers
	}

	room.State = model.RoomStateStarted
	room.UpdatedAt = m.clock.Now()

	if err := m.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	m.logger.Info("game started",
		slog.String("code", string(code)),
		slog.Int("players", len(room.Roster)))
	return room, nil
}

// CloseRoom discards a room and its roster. Already-admitted guests are not
// told; they keep waiting until they give up and navigate away. This matches
// the protocol as deployed - there is no host-teardown message to send.
func (m *Manager) CloseRoom(ctx context.Context, code model.RoomCode) error {
	if err := m.storage.DeleteRoom(ctx, code); err != nil {
		return err
	}
	m.logger.Info("room closed", slog.String("code", string(code)))
	return nil
}
