package model

// Personality is the AI-judge behavior tag the host selects before starting
type Personality string

const (
	PersonalityRoaster Personality = "ROASTER"
	PersonalityGrandma Personality = "GRANDMA"
	PersonalityGenZ    Personality = "GEN_Z"
)

// PersonalityInfo holds display metadata for a judge personality
type PersonalityInfo struct {
	Tag         Personality `json:"tag"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

// Personalities is the catalog of judge personalities, in display order.
// The lobby only stores the selected tag; the metadata is for the host UI.
var Personalities = []PersonalityInfo{
	{
		Tag:         PersonalityRoaster,
		Name:        "The Roaster",
		Description: "Merciless stand-up judge. Nothing is sacred.",
	},
	{
		Tag:         PersonalityGrandma,
		Name:        "Grandma",
		Description: "Sweet, supportive, and completely missing the point.",
	},
	{
		Tag:         PersonalityGenZ,
		Name:        "Gen Z",
		Description: "Chronically online. Scores in vibes only.",
	},
}

// ValidPersonality reports whether the tag is part of the catalog
func ValidPersonality(p Personality) bool {
	for _, info := range Personalities {
		if info.Tag == p {
			return true
		}
	}
	return false
}
