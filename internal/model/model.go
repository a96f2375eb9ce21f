// Package model holds the read-only-in-core domain records: competitions,
// teams, and bots. They are mutated only via store calls, never in place.
package model

// Competition is one tournament, scoped to a single game pack and round
// cadence. Round is monotonically non-decreasing across successful round
// executions.
type Competition struct {
	ID            string
	Round         int
	GamesPerRound int
	Type          string
	GamePack      string
}

// Team is a 2v2 roster. Either bot id may be empty, meaning the team is not
// ready to play.
type Team struct {
	ID            string
	CompetitionID string
	Bot1ID        string
	Bot2ID        string
}

// Ready reports whether both bot slots are filled. It does not imply the
// bots compile; see the qualifier package for the full qualification check.
func (t Team) Ready() bool {
	return t.Bot1ID != "" && t.Bot2ID != ""
}

// Bot is one submitted Java player archive. Error is written back to the
// store when compilation fails.
type Bot struct {
	ID         string
	SourcePath string
	Error      string
}
