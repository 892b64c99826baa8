package redis

import (
	"fmt"

	"github.com/mememaster/lobby/internal/model"
)

// Key prefix for all lobby data
const keyPrefix = "mememaster"

// roomKey returns the Redis key for a Room
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}
