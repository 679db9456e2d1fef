package model

import "time"

// Event describes a single fest event in the static catalog.  The catalog
// is loaded once at process start and never mutated, so Event values are
// shared freely across requests.
//
// Fields:
//  ID              – unique string key used in URLs and the ledger.
//  Name            – display name shown on receipts and exports.
//  Category        – "technical" or "non-technical".
//  Description     – short blurb for the listing endpoint.
//  Price           – registration fee in whole rupees (flat per registration).
//  MaxParticipants – participant cap; 0 means unlimited.
//  RequiresTeam    – whether team member details must be collected.
//  TeamSize        – exact number of team members when RequiresTeam is set.
//  RequiresGameIDs – whether in-game identifiers must be collected (esports).
//  Deadline        – last day registrations are accepted.
type Event struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Price           int       `json:"price"`
	MaxParticipants int       `json:"maxParticipants,omitempty"`
	RequiresTeam    bool      `json:"requiresTeam,omitempty"`
	TeamSize        int       `json:"teamSize,omitempty"`
	RequiresGameIDs bool      `json:"requiresGameIds,omitempty"`
	Deadline        time.Time `json:"deadline"`
}

// Event categories.
const (
	CategoryTechnical    = "technical"
	CategoryNonTechnical = "non-technical"
)

// TeamMember holds contact details for one additional participant of a
// team-based event.
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// GameID identifies a player inside an esports title.  CharacterName is
// optional and only used by titles that have one.
type GameID struct {
	PlayerName    string `json:"playerName"`
	GameID        string `json:"gameId"`
	CharacterName string `json:"characterName,omitempty"`
}
