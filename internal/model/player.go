package model

import "github.com/mememaster/lobby/internal/dependencies/random"

// PlayerID uniquely identifies a player within one lobby session
type PlayerID string

// Avatar is one of a fixed palette of visual tags assigned to players
type Avatar string

// AvatarPalette is the full set of avatar tags. Guests pick one uniformly
// at random when submitting a join request; the host stores it verbatim.
var AvatarPalette = []Avatar{
	"pink", "rose", "fuchsia", "purple",
	"violet", "indigo", "blue", "cyan",
}

// RandomAvatar draws an avatar uniformly from the palette
func RandomAvatar(rnd random.Random) Avatar {
	return AvatarPalette[rnd.Intn(len(AvatarPalette))]
}

// Player represents an admitted lobby participant. Players are created by
// the host when a join request is accepted and are owned exclusively by the
// host's roster for the lifetime of the lobby.
type Player struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	Score  int      `json:"score"` // always 0 in the lobby; mutated only in gameplay
	Avatar Avatar   `json:"avatar"`
}
