package qualifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batalja/roundrunner/internal/model"
	"github.com/batalja/roundrunner/internal/store"
)

type fakeCompiler struct {
	failBots map[string]error
}

func (f *fakeCompiler) Compile(_ context.Context, bot model.Bot) error {
	if err, ok := f.failBots[bot.ID]; ok {
		return err
	}
	return nil
}

func seedStore(st *store.Fake, teams []model.Team, bots []model.Bot) {
	for _, b := range bots {
		st.Bots[b.ID] = b
	}
	_ = teams
}

func TestQualify_HappyPath(t *testing.T) {
	st := store.NewFake()
	teams := []model.Team{
		{ID: "A", Bot1ID: "a1", Bot2ID: "a2"},
		{ID: "B", Bot1ID: "b1", Bot2ID: "b2"},
	}
	seedStore(st, teams, []model.Bot{{ID: "a1"}, {ID: "a2"}, {ID: "b1"}, {ID: "b2"}})
	comp := &fakeCompiler{failBots: map[string]error{}}

	qualified := Qualify(context.Background(), teams, st, comp)
	assert.Len(t, qualified, 2)
}

func TestQualify_DropsUnreadyTeam(t *testing.T) {
	st := store.NewFake()
	teams := []model.Team{
		{ID: "C", Bot1ID: "", Bot2ID: "c2"},
	}
	comp := &fakeCompiler{}

	qualified := Qualify(context.Background(), teams, st, comp)
	assert.Empty(t, qualified)
}

func TestQualify_CompileFailureDropsTeamAndRecordsError(t *testing.T) {
	st := store.NewFake()
	teams := []model.Team{
		{ID: "B", Bot1ID: "b1", Bot2ID: "b2"},
	}
	seedStore(st, teams, []model.Bot{{ID: "b1"}, {ID: "b2"}})
	comp := &fakeCompiler{failBots: map[string]error{"b2": errors.New("player file missing")}}

	qualified := Qualify(context.Background(), teams, st, comp)
	assert.Empty(t, qualified)

	require.Contains(t, st.BotErrors, "b2")
	assert.Equal(t, "player file missing", st.BotErrors["b2"])
}

func TestQualify_StoreLookupFailureDropsSilently(t *testing.T) {
	st := store.NewFake() // bots not seeded, GetBot errors
	teams := []model.Team{
		{ID: "D", Bot1ID: "d1", Bot2ID: "d2"},
	}
	comp := &fakeCompiler{}

	qualified := Qualify(context.Background(), teams, st, comp)
	assert.Empty(t, qualified)
	assert.Empty(t, st.BotErrors)
}
