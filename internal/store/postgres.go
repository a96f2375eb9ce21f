package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/batalja/roundrunner/internal/gameresult"
	"github.com/batalja/roundrunner/internal/model"
)

// Postgres is a Store backed by a pgx connection pool. NewPostgres opens
// the pool and pings it once so connection failures surface immediately.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a connection pool against databaseURL and verifies it
// with a ping.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) GetCompetition(ctx context.Context, id string) (model.Competition, error) {
	var c model.Competition
	err := p.pool.QueryRow(ctx, `
		SELECT id, round, games_per_round, type, game_pack
		FROM competitions WHERE id = $1
	`, id).Scan(&c.ID, &c.Round, &c.GamesPerRound, &c.Type, &c.GamePack)
	if err != nil {
		return model.Competition{}, fmt.Errorf("get competition %s: %w", id, err)
	}
	return c, nil
}

func (p *Postgres) GetTeams(ctx context.Context, competitionID string) ([]model.Team, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, competition_id, bot1, bot2
		FROM teams WHERE competition_id = $1
	`, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get teams for %s: %w", competitionID, err)
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.CompetitionID, &t.Bot1ID, &t.Bot2ID); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (p *Postgres) GetBot(ctx context.Context, id string) (model.Bot, error) {
	var b model.Bot
	err := p.pool.QueryRow(ctx, `
		SELECT id, source_path, COALESCE(error, '') FROM bots WHERE id = $1
	`, id).Scan(&b.ID, &b.SourcePath, &b.Error)
	if err != nil {
		return model.Bot{}, fmt.Errorf("get bot %s: %w", id, err)
	}
	return b, nil
}

func (p *Postgres) SetBotError(ctx context.Context, botID, msg string) error {
	_, err := p.pool.Exec(ctx, `UPDATE bots SET error = $1 WHERE id = $2`, msg, botID)
	if err != nil {
		return fmt.Errorf("set bot error %s: %w", botID, err)
	}
	return nil
}

func (p *Postgres) InsertGame(ctx context.Context, game *gameresult.NewGame) (gameresult.Result, error) {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO games2v2 (
			id, competition_id, round, team1_id, team2_id,
			team1bot1_id, team1bot2_id, team2bot1_id, team2bot2_id,
			team1bot1_survived, team1bot2_survived, team2bot1_survived, team2bot2_survived,
			winner_id, log_file_path, additional_data,
			team1_elo_delta, team2_elo_delta
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
	`,
		game.ID, game.CompetitionID, game.Round, game.Team1ID, game.Team2ID,
		game.Team1Bot1ID, game.Team1Bot2ID, game.Team2Bot1ID, game.Team2Bot2ID,
		game.Team1Bot1Survived, game.Team1Bot2Survived, game.Team2Bot1Survived, game.Team2Bot2Survived,
		game.WinnerID, game.LogFilePath, json.RawMessage(game.AdditionalData),
		game.Team1EloDelta, game.Team2EloDelta,
	)
	if err != nil {
		return gameresult.Result{}, fmt.Errorf("insert game %s: %w", game.ID, err)
	}
	return gameresult.Result{NewGame: *game}, nil
}

func (p *Postgres) SetCompetitionRound(ctx context.Context, competitionID string, round int) error {
	_, err := p.pool.Exec(ctx, `UPDATE competitions SET round = $1 WHERE id = $2`, round, competitionID)
	if err != nil {
		return fmt.Errorf("set competition round %s: %w", competitionID, err)
	}
	return nil
}

func (p *Postgres) SetTeamElo(ctx context.Context, teamID string, delta float64) error {
	_, err := p.pool.Exec(ctx, `UPDATE teams SET elo = elo + $1 WHERE id = $2`, delta, teamID)
	if err != nil {
		return fmt.Errorf("set team elo %s: %w", teamID, err)
	}
	return nil
}

func (p *Postgres) GetTeamRatings(ctx context.Context, competitionID string) (map[string]float64, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, COALESCE(elo, 1000) FROM teams WHERE competition_id = $1
	`, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get team ratings for %s: %w", competitionID, err)
	}
	defer rows.Close()

	ratings := make(map[string]float64)
	for rows.Next() {
		var id string
		var elo float64
		if err := rows.Scan(&id, &elo); err != nil {
			return nil, fmt.Errorf("scan team rating: %w", err)
		}
		ratings[id] = elo
	}
	return ratings, rows.Err()
}
