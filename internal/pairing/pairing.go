// Package pairing builds the quota-random match schedule for a round: each
// qualified team gets a fixed number of tickets, and pairs are drawn from
// the ticket pool by repeated swap-remove until the target count is met.
package pairing

import (
	"math/rand"

	"github.com/batalja/roundrunner/internal/model"
)

// Pair is an unordered match pairing. Self-pairs are permitted by design:
// when the ticket pool forces it, a team can play itself.
type Pair struct {
	Team1 model.Team
	Team2 model.Team
}

// Generate builds the ticket pool — each team repeated gamesPerRound
// times, as gamesPerRound consecutive full sweeps of the team list, not
// interleaved copies — then draws pairs from it via swap-remove until
// ceil(N*K/2) pairs exist or the pool runs out. If the pool has an odd
// size, the last draw finds no partner, so floor(N*K/2) pairs are returned
// and one ticket goes unused.
func Generate(gamesPerRound int, teams []model.Team) []Pair {
	pool := buildTicketPool(gamesPerRound, teams)
	target := (len(pool) + 1) / 2

	var pairs []Pair
	for len(pairs) < target {
		if len(pool) == 0 {
			break
		}
		var t1, t2 model.Team
		t1, pool = drawOne(pool)
		if len(pool) == 0 {
			break
		}
		t2, pool = drawOne(pool)
		pairs = append(pairs, Pair{Team1: t1, Team2: t2})
	}
	return pairs
}

// buildTicketPool concatenates gamesPerRound full sweeps of teams, e.g.
// for teams [A,B] and two games per round: [A,B,A,B].
func buildTicketPool(gamesPerRound int, teams []model.Team) []model.Team {
	pool := make([]model.Team, 0, gamesPerRound*len(teams))
	for i := 0; i < gamesPerRound; i++ {
		pool = append(pool, teams...)
	}
	return pool
}

// drawOne removes a uniformly random element from pool via swap-with-last
// and returns it along with the shortened pool.
func drawOne(pool []model.Team) (model.Team, []model.Team) {
	idx := rand.Intn(len(pool))
	last := len(pool) - 1
	drawn := pool[idx]
	pool[idx] = pool[last]
	pool = pool[:last]
	return drawn, pool
}
