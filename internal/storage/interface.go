package storage

import (
	"context"

	"github.com/mememaster/lobby/internal/model"
)

// Storage defines the interface for room persistence. The default backend
// keeps everything in host-process memory; the Redis backend exists for the
// relay-server deployment where rooms outlive a single connection.
type Storage interface {
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, code model.RoomCode) error
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)
}
