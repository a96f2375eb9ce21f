// Package elo recomputes team ratings from a round's finished games. It is
// the one piece of domain math with no corpus or ecosystem library to wire:
// standard Elo (K-factor 32, logistic expected score) is implemented
// directly against the closed-form update rather than through a dependency,
// since no retrieved example imports an Elo library.
package elo

import (
	"context"
	"fmt"
	"math"

	"github.com/batalja/roundrunner/internal/gameresult"
	"github.com/batalja/roundrunner/internal/matchmakererr"
)

// KFactor controls how sharply a single game moves a team's rating.
const KFactor = 32.0

// DefaultRating seeds a team with no prior history.
const DefaultRating = 1000.0

// Store is the subset of store.Store the Elo pass needs.
type Store interface {
	SetTeamElo(ctx context.Context, teamID string, delta float64) error
}

// Apply computes per-team Elo deltas from games, a batch of games finished
// in this round, fills each game's Team1EloDelta/Team2EloDelta, and
// persists the aggregated delta per team via the store. Games with no
// decisive winner are scored as a draw (0.5 each), so they move ratings only
// when the two teams' ratings differ.
func Apply(ctx context.Context, games []*gameresult.NewGame, ratings map[string]float64, st Store) error {
	deltas := make(map[string]float64)

	for _, game := range games {
		r1 := ratingOf(ratings, game.Team1ID)
		r2 := ratingOf(ratings, game.Team2ID)

		score1 := 0.5
		switch game.WinnerID {
		case game.Team1ID:
			score1 = 1.0
		case game.Team2ID:
			score1 = 0.0
		}

		expected1 := expectedScore(r1, r2)
		delta1 := KFactor * (score1 - expected1)
		delta2 := -delta1

		game.Team1EloDelta = delta1
		game.Team2EloDelta = delta2

		deltas[game.Team1ID] += delta1
		deltas[game.Team2ID] += delta2
	}

	for teamID, delta := range deltas {
		if err := st.SetTeamElo(ctx, teamID, delta); err != nil {
			return fmt.Errorf("persist elo delta for team %s: %w: %v", teamID, matchmakererr.ErrDatabase, err)
		}
	}
	return nil
}

func ratingOf(ratings map[string]float64, teamID string) float64 {
	if r, ok := ratings[teamID]; ok {
		return r
	}
	return DefaultRating
}

// expectedScore is the standard logistic Elo expectation for player 1
// against player 2.
func expectedScore(r1, r2 float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (r2-r1)/400.0))
}
