package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mememaster/lobby/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RoomTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newRoom(code model.RoomCode) *model.Room {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Room{
		Code:        code,
		State:       model.RoomStateOpen,
		Roster:      []model.Player{{ID: "p-1", Name: "Alex", Avatar: "cyan"}},
		Personality: model.PersonalityGenZ,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := s.newRoom("K7M2X")
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	got, err := s.storage.GetRoom(s.ctx, "K7M2X")
	s.Require().NoError(err)
	s.Equal(room.Code, got.Code)
	s.Equal(room.Personality, got.Personality)
	s.Require().Len(got.Roster, 1)
	s.Equal("Alex", got.Roster[0].Name)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "ZZZZZ")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDeleteRoom() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.newRoom("K7M2X")))
	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "K7M2X"))

	_, err := s.storage.GetRoom(s.ctx, "K7M2X")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "K7M2X")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.newRoom("K7M2X")))

	exists, err = s.storage.RoomExists(s.ctx, "K7M2X")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestRoomExpires() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.newRoom("K7M2X")))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetRoom(s.ctx, "K7M2X")
	s.ErrorIs(err, model.ErrRoomNotFound)
}
