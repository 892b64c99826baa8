package lobby

import (
	"github.com/mememaster/lobby/internal/dependencies/random"
	"github.com/mememaster/lobby/internal/model"
)

const (
	// CodeLength is the length of generated room codes
	CodeLength = 5
	// CodeAlphabet is the characters used in room codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateCode produces a room code of CodeLength characters drawn
// independently and uniformly from CodeAlphabet. The ~33.5M code space makes
// a fresh code probably unique for a handful of concurrent rooms; nothing
// here or in the callers checks for collisions.
func GenerateCode(rnd random.Random) model.RoomCode {
	return model.RoomCode(rnd.String(CodeLength, CodeAlphabet))
}
