// Package gameresult holds the structured output of a single match: the
// NewGame record the match runner builds up, the per-player stat counters
// the output parser fills in, and the result returned once the store has
// assigned it a persistent identity.
package gameresult

import "github.com/google/uuid"

// NewGame is the write-once record built by the match runner and mutated by
// the parser and the Elo pass, then handed to the store.
type NewGame struct {
	ID            uuid.UUID
	CompetitionID string
	Round         int
	Team1ID       string
	Team2ID       string

	Team1Bot1ID string
	Team1Bot2ID string
	Team2Bot1ID string
	Team2Bot2ID string

	Team1Bot1Survived bool
	Team1Bot2Survived bool
	Team2Bot1Survived bool
	Team2Bot2Survived bool

	// WinnerID is a team id, or "" if undetermined.
	WinnerID string

	LogFilePath    string
	AdditionalData string

	Team1EloDelta float64
	Team2EloDelta float64
}

// New builds a NewGame with a fresh identity and the slot ids pulled from
// both teams, in the fixed order team1bot1, team1bot2, team2bot1, team2bot2.
func New(competitionID string, round int, team1ID, team2ID, team1Bot1, team1Bot2, team2Bot1, team2Bot2 string) *NewGame {
	return &NewGame{
		ID:            uuid.New(),
		CompetitionID: competitionID,
		Round:         round,
		Team1ID:       team1ID,
		Team2ID:       team2ID,
		Team1Bot1ID:   team1Bot1,
		Team1Bot2ID:   team1Bot2,
		Team2Bot1ID:   team2Bot1,
		Team2Bot2ID:   team2Bot2,
	}
}

// Result is the persisted form of a NewGame, as returned by the store.
type Result struct {
	NewGame
}

// GamePlayerStats holds the numeric counters the evaluator reports for one
// bot slot over the course of a healthy game. Unset fields default to their
// zero value, matching the parser's "parse errors become 0/false" rule.
type GamePlayerStats struct {
	TurnsPlayed          int  `json:"turns_played"`
	FleetGenerated       int  `json:"fleet_generated"`
	FleetLost            int  `json:"fleet_lost"`
	FleetReinforced      int  `json:"fleet_reinforced"`
	LargestAttack        int  `json:"largest_attack"`
	LargestLoss          int  `json:"largest_loss"`
	LargestReinforcement int  `json:"largest_reinforcement"`
	PlanetsLost          int  `json:"planets_lost"`
	PlanetsConquered     int  `json:"planets_conquered"`
	PlanetsDefended      int  `json:"planets_defended"`
	PlanetsAttacked      int  `json:"planets_attacked"`
	NumFleetLost         int  `json:"num_fleet_lost"`
	NumFleetReinforced   int  `json:"num_fleet_reinforced"`
	NumFleetGenerated    int  `json:"num_fleet_generated"`
	TotalTroopsGenerated int  `json:"total_troops_generated"`
	Survived             bool `json:"survived"`
}

// GameError is the additional_data payload for a bugged game: the raw
// stderr (with backslashes doubled, matching the evaluator's quirk) and the
// id of the bot blamed for the crash, or "Unknown" if none was found.
type GameError struct {
	Error   string `json:"error"`
	BlameID string `json:"blame_id"`
}
