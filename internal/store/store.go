// Package store defines the persistence contract the round pipeline
// consumes — competitions, teams, bots, and games — and a Postgres-backed
// implementation of it built on a pgxpool.Pool.
package store

import (
	"context"

	"github.com/batalja/roundrunner/internal/gameresult"
	"github.com/batalja/roundrunner/internal/model"
)

// Store is the persistence contract the matchmaker core consumes. It does
// not implement scheduling or match logic; it is pure CRUD.
type Store interface {
	GetCompetition(ctx context.Context, id string) (model.Competition, error)
	GetTeams(ctx context.Context, competitionID string) ([]model.Team, error)
	GetBot(ctx context.Context, id string) (model.Bot, error)
	SetBotError(ctx context.Context, botID, msg string) error
	InsertGame(ctx context.Context, game *gameresult.NewGame) (gameresult.Result, error)
	SetCompetitionRound(ctx context.Context, competitionID string, round int) error
	SetTeamElo(ctx context.Context, teamID string, delta float64) error
	GetTeamRatings(ctx context.Context, competitionID string) (map[string]float64, error)
}
