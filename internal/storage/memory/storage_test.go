package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mememaster/lobby/internal/model"
)

func newTestRoom(code model.RoomCode) *model.Room {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Room{
		Code:        code,
		State:       model.RoomStateOpen,
		Roster:      []model.Player{},
		Personality: model.PersonalityRoaster,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestSaveAndGetRoom(t *testing.T) {
	s := New()
	ctx := context.Background()

	room := newTestRoom("K7M2X")
	require.NoError(t, s.SaveRoom(ctx, room))

	got, err := s.GetRoom(ctx, "K7M2X")
	require.NoError(t, err)
	assert.Equal(t, room.Code, got.Code)
	assert.Equal(t, model.PersonalityRoaster, got.Personality)
}

func TestGetRoomNotFound(t *testing.T) {
	s := New()
	_, err := s.GetRoom(context.Background(), "ZZZZZ")
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
}

func TestDeleteRoom(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.SaveRoom(ctx, newTestRoom("K7M2X")))

	require.NoError(t, s.DeleteRoom(ctx, "K7M2X"))

	_, err := s.GetRoom(ctx, "K7M2X")
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
}

func TestRoomsAreIsolatedFromCallerMutation(t *testing.T) {
	s := New()
	ctx := context.Background()

	room := newTestRoom("K7M2X")
	room.Roster = []model.Player{{ID: "p1", Name: "Dana"}}
	require.NoError(t, s.SaveRoom(ctx, room))

	// Mutating the saved value after the fact changes nothing stored
	room.State = model.RoomStateStarted
	room.Roster = append(room.Roster, model.Player{ID: "p2", Name: "Morgan"})

	got, err := s.GetRoom(ctx, "K7M2X")
	require.NoError(t, err)
	assert.Equal(t, model.RoomStateOpen, got.State)
	require.Len(t, got.Roster, 1)

	// Mutating a retrieved value does not leak into a later read
	got.Roster[0].Name = "Mallory"
	got.Roster = append(got.Roster, model.Player{ID: "p3", Name: "Jamie"})

	again, err := s.GetRoom(ctx, "K7M2X")
	require.NoError(t, err)
	require.Len(t, again.Roster, 1)
	assert.Equal(t, "Dana", again.Roster[0].Name)
}

func TestRoomExists(t *testing.T) {
	s := New()
	ctx := context.Background()

	exists, err := s.RoomExists(ctx, "K7M2X")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.SaveRoom(ctx, newTestRoom("K7M2X")))

	exists, err = s.RoomExists(ctx, "K7M2X")
	require.NoError(t, err)
	assert.True(t, exists)
}
