package lobby

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mememaster/lobby/internal/dependencies/mocks"
	"github.com/mememaster/lobby/internal/model"
	"github.com/mememaster/lobby/internal/storage/memory"
	"github.com/mememaster/lobby/internal/testutil"
)

type ManagerSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	manager *Manager
	ctx     context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.manager = NewManager(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

// createRoom creates a room with a queued code
func (s *ManagerSuite) createRoom(code string) *model.Room {
	s.random.QueueString(code)
	room, err := s.manager.CreateRoom(s.ctx, model.PersonalityRoaster)
	s.Require().NoError(err)
	return room
}

// CreateRoom tests

func (s *ManagerSuite) TestCreateRoomSucceeds() {
	room := s.createRoom("K7M2X")

	s.Equal(model.RoomCode("K7M2X"), room.Code)
	s.Equal(model.RoomStateOpen, room.State)
	s.Empty(room.Roster)
	s.Equal(model.PersonalityRoaster, room.Personality)
}

func (s *ManagerSuite) TestCreateRoomIsPersisted() {
	room := s.createRoom("K7M2X")

	retrieved, err := s.manager.GetRoom(s.ctx, room.Code)
	s.Require().NoError(err)
	s.Equal(room.Code, retrieved.Code)
}

func (s *ManagerSuite) TestCreateRoomRejectsUnknownPersonality() {
	s.random.QueueString("K7M2X")
	_, err := s.manager.CreateRoom(s.ctx, "SHAKESPEARE")
	s.ErrorIs(err, model.ErrUnknownPersonality)
}

// Admit tests

func (s *ManagerSuite) TestAdmitAppendsPlayer() {
	room := s.createRoom("K7M2X")

	s.random.QueueString("PLAYERID0001")
	player, err := s.manager.Admit(s.ctx, room.Code, "Alex", "cyan")
	s.Require().NoError(err)

	s.Equal("Alex", player.Name)
	s.Equal(0, player.Score)
	s.Equal(model.Avatar("cyan"), player.Avatar)
	s.NotEmpty(player.ID)

	updated, _ := s.manager.GetRoom(s.ctx, room.Code)
	s.Require().Len(updated.Roster, 1)
	s.Equal(player.ID, updated.Roster[0].ID)
}

func (s *ManagerSuite) TestAdmitDisambiguatesDuplicateNames() {
	room := s.createRoom("K7M2X")

	s.random.QueueString("PLAYERID0001", "PLAYERID0002")
	s.random.QueueIntn(42)

	first, err := s.manager.Admit(s.ctx, room.Code, "Dana", "pink")
	s.Require().NoError(err)
	second, err := s.manager.Admit(s.ctx, room.Code, "Dana", "blue")
	s.Require().NoError(err)

	s.Equal("Dana", first.Name)
	s.Regexp(regexp.MustCompile(`^Dana \d{1,2}$`), second.Name)
	s.NotEqual(first.Name, second.Name)
	s.NotEqual(first.ID, second.ID)
}

func (s *ManagerSuite) TestAdmitIsNotIdempotent() {
	room := s.createRoom("K7M2X")

	s.random.QueueString("PLAYERID0001", "PLAYERID0002")
	_, err := s.manager.Admit(s.ctx, room.Code, "Alex", "cyan")
	s.Require().NoError(err)
	_, err = s.manager.Admit(s.ctx, room.Code, "Alex", "cyan")
	s.Require().NoError(err)

	updated, _ := s.manager.GetRoom(s.ctx, room.Code)
	s.Len(updated.Roster, 2)
}

func (s *ManagerSuite) TestAdmitPreservesInsertionOrder() {
	room := s.createRoom("K7M2X")

	s.random.QueueString("ID-A", "ID-B", "ID-C")
	for _, name := range []string{"A", "B", "C"} {
		_, err := s.manager.Admit(s.ctx, room.Code, name, "pink")
		s.Require().NoError(err)
	}

	updated, _ := s.manager.GetRoom(s.ctx, room.Code)
	s.Require().Len(updated.Roster, 3)
	s.Equal("A", updated.Roster[0].Name)
	s.Equal("B", updated.Roster[1].Name)
	s.Equal("C", updated.Roster[2].Name)
}

func (s *ManagerSuite) TestAdmitFailsForUnknownRoom() {
	_, err := s.manager.Admit(s.ctx, "ZZZZZ", "Alex", "cyan")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ManagerSuite) TestAdmitFailsAfterStart() {
	room := s.createRoom("K7M2X")
	s.random.QueueString("PLAYERID0001")
	_, err := s.manager.Admit(s.ctx, room.Code, "Alex", "cyan")
	s.Require().NoError(err)

	_, err = s.manager.StartGame(s.ctx, room.Code, 1)
	s.Require().NoError(err)

	_, err = s.manager.Admit(s.ctx, room.Code, "Late", "blue")
	s.ErrorIs(err, model.ErrRoomStarted)
}

// StartGame tests

func (s *ManagerSuite) TestStartGameBelowMinimumFailsWithoutMutating() {
	room := s.createRoom("K7M2X")
	s.random.QueueString("ID-A", "ID-B")
	_, _ = s.manager.Admit(s.ctx, room.Code, "A", "pink")
	_, _ = s.manager.Admit(s.ctx, room.Code, "B", "blue")

	_, err := s.manager.StartGame(s.ctx, room.Code, 3)
	s.ErrorIs(err, model.ErrInsufficientPlayers)

	unchanged, _ := s.manager.GetRoom(s.ctx, room.Code)
	s.Equal(model.RoomStateOpen, unchanged.State)
	s.Len(unchanged.Roster, 2)
}

func (s *ManagerSuite) TestStartGameAtMinimumSucceeds() {
	room := s.createRoom("K7M2X")
	s.random.QueueString("ID-A", "ID-B", "ID-C")
	for _, name := range []string{"A", "B", "C"} {
		_, _ = s.manager.Admit(s.ctx, room.Code, name, "pink")
	}

	started, err := s.manager.StartGame(s.ctx, room.Code, 3)
	s.Require().NoError(err)
	s.Equal(model.RoomStateStarted, started.State)
	s.Len(started.Roster, 3)
	s.Equal(model.PersonalityRoaster, started.Personality)
}

func (s *ManagerSuite) TestStartGameTwiceFails() {
	room := s.createRoom("K7M2X")
	s.random.QueueString("ID-A")
	_, _ = s.manager.Admit(s.ctx, room.Code, "A", "pink")

	_, err := s.manager.StartGame(s.ctx, room.Code, 1)
	s.Require().NoError(err)

	_, err = s.manager.StartGame(s.ctx, room.Code, 1)
	s.ErrorIs(err, model.ErrRoomStarted)
}

// CloseRoom tests

func (s *ManagerSuite) TestCloseRoomDiscardsRoster() {
	room := s.createRoom("K7M2X")
	s.random.QueueString("ID-A")
	_, _ = s.manager.Admit(s.ctx, room.Code, "A", "pink")

	s.Require().NoError(s.manager.CloseRoom(s.ctx, room.Code))

	_, err := s.manager.GetRoom(s.ctx, room.Code)
	s.ErrorIs(err, model.ErrRoomNotFound)
}
