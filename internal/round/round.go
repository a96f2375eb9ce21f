// Package round glues the pipeline stages into one round: load, qualify,
// pair, play matches across a bounded worker pool, recompute Elo, persist
// results, clean up, and advance the competition's round counter.
// Per-team and per-match failures are isolated; only orchestration-step
// failures abort the round.
package round

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/batalja/roundrunner/internal/elo"
	"github.com/batalja/roundrunner/internal/gameresult"
	"github.com/batalja/roundrunner/internal/matchmakererr"
	"github.com/batalja/roundrunner/internal/model"
	"github.com/batalja/roundrunner/internal/pairing"
	"github.com/batalja/roundrunner/internal/qualifier"
	"github.com/batalja/roundrunner/internal/store"
)

// Matcher runs a single match to completion. match.Runner satisfies this.
type Matcher interface {
	Run(ctx context.Context, comp model.Competition, team1, team2 model.Team) (*gameresult.NewGame, error)
}

// Reaper cleans up transient match state after a round. reaper.Reaper
// satisfies this.
type Reaper interface {
	Clean(ctx context.Context) error
}

// Runner owns the collaborators one round needs: the store, the bot
// compiler, the match runner, and the process reaper.
type Runner struct {
	Store    store.Store
	Compiler qualifier.Compiler
	Matcher  Matcher
	Reaper   Reaper

	// WorkerCount bounds match concurrency. Zero or negative means
	// max(1, runtime.NumCPU()-1).
	WorkerCount int
}

// RunRound executes one full round for competitionID: load competition and
// teams, qualify, pair, play every match across the worker pool, recompute
// Elo over the whole batch (NewGame is write-once: parser then Elo fill it
// in before it is ever persisted), insert the finished games, clean up
// match state, and bump the competition's round counter.
func (r *Runner) RunRound(ctx context.Context, competitionID string) error {
	comp, err := r.Store.GetCompetition(ctx, competitionID)
	if err != nil {
		return fmt.Errorf("load competition %s: %w: %v", competitionID, matchmakererr.ErrDatabase, err)
	}

	teams, err := r.Store.GetTeams(ctx, competitionID)
	if err != nil {
		return fmt.Errorf("load teams for %s: %w: %v", competitionID, matchmakererr.ErrDatabase, err)
	}

	qualified := qualifier.Qualify(ctx, teams, r.Store, r.Compiler)
	log.Printf("[Round] competition %s round %d: %d/%d teams qualified", comp.ID, comp.Round, len(qualified), len(teams))

	pairs := pairing.Generate(comp.GamesPerRound, qualified)
	log.Printf("[Round] competition %s round %d: %d matches scheduled", comp.ID, comp.Round, len(pairs))

	played := r.playAll(ctx, comp, pairs)
	log.Printf("[Round] competition %s round %d: %d matches finished", comp.ID, comp.Round, len(played))

	ratings, err := r.Store.GetTeamRatings(ctx, competitionID)
	if err != nil {
		return fmt.Errorf("load team ratings for %s: %w: %v", competitionID, matchmakererr.ErrDatabase, err)
	}
	if err := elo.Apply(ctx, played, ratings, r.Store); err != nil {
		return err
	}

	for _, game := range played {
		if _, err := r.Store.InsertGame(ctx, game); err != nil {
			log.Printf("[Round] insert game %s failed: %v", game.ID, err)
		}
	}

	if r.Reaper != nil {
		if err := r.Reaper.Clean(ctx); err != nil {
			return err
		}
	}

	if err := r.Store.SetCompetitionRound(ctx, competitionID, comp.Round+1); err != nil {
		return fmt.Errorf("advance round for %s: %w: %v", competitionID, matchmakererr.ErrDatabase, err)
	}

	return nil
}

// playAll dispatches every pair across a worker pool bounded by
// WorkerCount, collecting the parsed NewGame of each match that completes.
// A match that fails to stage or spawn is logged and dropped; it never
// aborts the round. Games are not yet persisted here — Elo still needs to
// fill in each game's rating deltas first.
func (r *Runner) playAll(ctx context.Context, comp model.Competition, pairs []pairing.Pair) []*gameresult.NewGame {
	workers := r.WorkerCount
	if workers < 1 {
		workers = runtime.NumCPU() - 1
		if workers < 1 {
			workers = 1
		}
	}

	sem := semaphore.NewWeighted(int64(workers))
	var g errgroup.Group
	var mu sync.Mutex
	var played []*gameresult.NewGame

	for _, p := range pairs {
		p := p
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Printf("[Round] stopped dispatching matches: %v", err)
			break
		}
		g.Go(func() error {
			defer sem.Release(1)

			game, err := r.Matcher.Run(ctx, comp, p.Team1, p.Team2)
			if err != nil {
				log.Printf("[Round] match %s vs %s failed: %v", p.Team1.ID, p.Team2.ID, err)
				return nil
			}

			mu.Lock()
			played = append(played, game)
			mu.Unlock()
			return nil
		})
	}

	// g.Go never returns a non-nil error; Wait only blocks for completion.
	_ = g.Wait()
	return played
}
