package elo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batalja/roundrunner/internal/gameresult"
	"github.com/batalja/roundrunner/internal/store"
)

func TestApply_WinnerGainsLoserLoses(t *testing.T) {
	st := store.NewFake()
	game := &gameresult.NewGame{Team1ID: "A", Team2ID: "B", WinnerID: "A"}
	ratings := map[string]float64{"A": 1000, "B": 1000}

	err := Apply(context.Background(), []*gameresult.NewGame{game}, ratings, st)
	require.NoError(t, err)

	assert.Greater(t, game.Team1EloDelta, 0.0)
	assert.Less(t, game.Team2EloDelta, 0.0)
	assert.InDelta(t, game.Team1EloDelta, -game.Team2EloDelta, 1e-9)
	assert.InDelta(t, st.EloDeltas["A"], game.Team1EloDelta, 1e-9)
	assert.InDelta(t, st.EloDeltas["B"], game.Team2EloDelta, 1e-9)
}

func TestApply_UndeterminedWinnerSplitsEvenly(t *testing.T) {
	st := store.NewFake()
	game := &gameresult.NewGame{Team1ID: "A", Team2ID: "B", WinnerID: ""}
	ratings := map[string]float64{"A": 1000, "B": 1000}

	err := Apply(context.Background(), []*gameresult.NewGame{game}, ratings, st)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, game.Team1EloDelta, 1e-9)
	assert.InDelta(t, 0.0, game.Team2EloDelta, 1e-9)
}

func TestApply_AggregatesMultipleGamesPerTeam(t *testing.T) {
	st := store.NewFake()
	games := []*gameresult.NewGame{
		{Team1ID: "A", Team2ID: "B", WinnerID: "A"},
		{Team1ID: "A", Team2ID: "C", WinnerID: "A"},
	}
	ratings := map[string]float64{"A": 1000, "B": 1000, "C": 1000}

	err := Apply(context.Background(), games, ratings, st)
	require.NoError(t, err)

	expected := games[0].Team1EloDelta + games[1].Team1EloDelta
	assert.InDelta(t, expected, st.EloDeltas["A"], 1e-9)
}
