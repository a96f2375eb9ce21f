package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/batalja/roundrunner/internal/gameresult"
	"github.com/batalja/roundrunner/internal/model"
)

// Fake is an in-memory Store for tests, so round orchestration and
// qualifier logic can be exercised without a live Postgres instance.
type Fake struct {
	mu sync.Mutex

	Competitions map[string]model.Competition
	Teams        map[string][]model.Team
	Bots         map[string]model.Bot
	Games        []*gameresult.NewGame
	EloDeltas    map[string]float64

	// BotErrors records bot.id -> the message most recently written via
	// SetBotError, for test assertions.
	BotErrors map[string]string
}

// NewFake builds an empty fake store.
func NewFake() *Fake {
	return &Fake{
		Competitions: make(map[string]model.Competition),
		Teams:        make(map[string][]model.Team),
		Bots:         make(map[string]model.Bot),
		EloDeltas:    make(map[string]float64),
		BotErrors:    make(map[string]string),
	}
}

func (f *Fake) GetCompetition(_ context.Context, id string) (model.Competition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.Competitions[id]
	if !ok {
		return model.Competition{}, fmt.Errorf("competition %s not found", id)
	}
	return c, nil
}

func (f *Fake) GetTeams(_ context.Context, competitionID string) ([]model.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Team(nil), f.Teams[competitionID]...), nil
}

func (f *Fake) GetBot(_ context.Context, id string) (model.Bot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.Bots[id]
	if !ok {
		return model.Bot{}, fmt.Errorf("bot %s not found", id)
	}
	return b, nil
}

func (f *Fake) SetBotError(_ context.Context, botID, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BotErrors[botID] = msg
	if b, ok := f.Bots[botID]; ok {
		b.Error = msg
		f.Bots[botID] = b
	}
	return nil
}

func (f *Fake) InsertGame(_ context.Context, game *gameresult.NewGame) (gameresult.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Games = append(f.Games, game)
	return gameresult.Result{NewGame: *game}, nil
}

func (f *Fake) SetCompetitionRound(_ context.Context, competitionID string, round int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.Competitions[competitionID]
	if !ok {
		return fmt.Errorf("competition %s not found", competitionID)
	}
	c.Round = round
	f.Competitions[competitionID] = c
	return nil
}

func (f *Fake) SetTeamElo(_ context.Context, teamID string, delta float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EloDeltas[teamID] += delta
	return nil
}

func (f *Fake) GetTeamRatings(_ context.Context, competitionID string) (map[string]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ratings := make(map[string]float64)
	for _, team := range f.Teams[competitionID] {
		ratings[team.ID] = 1000
	}
	return ratings, nil
}
