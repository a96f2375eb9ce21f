// Package qualifier decides which teams are ready to play a round: both
// bot ids present, both bots retrievable, both bots compiling cleanly.
package qualifier

import (
	"context"
	"log"
	"sync"

	"github.com/batalja/roundrunner/internal/model"
)

// Compiler is the subset of compiler.Compiler the qualifier needs.
type Compiler interface {
	Compile(ctx context.Context, bot model.Bot) error
}

// Store is the subset of store.Store the qualifier needs.
type Store interface {
	GetBot(ctx context.Context, id string) (model.Bot, error)
	SetBotError(ctx context.Context, botID, msg string) error
}

// Qualify evaluates every team concurrently and returns those that are
// ready to play, in no particular order. A team is dropped silently on a
// missing bot id or a store error; a team is dropped with its failing
// bot's error recorded when that bot fails to compile.
func Qualify(ctx context.Context, teams []model.Team, st Store, comp Compiler) []model.Team {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted []model.Team
	)

	for _, team := range teams {
		team := team
		wg.Add(1)
		go func() {
			defer wg.Done()
			if qualifyTeam(ctx, team, st, comp) {
				mu.Lock()
				accepted = append(accepted, team)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return accepted
}

func qualifyTeam(ctx context.Context, team model.Team, st Store, comp Compiler) bool {
	if !team.Ready() {
		return false
	}

	bot1, err := st.GetBot(ctx, team.Bot1ID)
	if err != nil {
		return false
	}
	bot2, err := st.GetBot(ctx, team.Bot2ID)
	if err != nil {
		return false
	}

	if !compileAndRecord(ctx, bot1, st, comp) {
		return false
	}
	if !compileAndRecord(ctx, bot2, st, comp) {
		return false
	}
	return true
}

func compileAndRecord(ctx context.Context, bot model.Bot, st Store, comp Compiler) bool {
	if err := comp.Compile(ctx, bot); err != nil {
		if setErr := st.SetBotError(ctx, bot.ID, err.Error()); setErr != nil {
			log.Printf("[Qualify] bot %s compile error %v, and set_bot_error failed: %v", bot.ID, err, setErr)
		}
		return false
	}
	return true
}
