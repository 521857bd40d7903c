package oracle

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	gtassert "gotest.tools/v3/assert"

	"github.com/mpapenbr/pitwall-go/pkg/catalog"
	"github.com/mpapenbr/pitwall-go/pkg/model"
)

func TestSimulator(t *testing.T) {
	cat := catalog.Default()
	teams := []model.Team{
		testTeam(0, "Host Team", cat.Drivers[0], cat.Drivers[1]),
		testTeam(1, "Guest Team", cat.Drivers[2]),
	}
	sim := NewSimulator(cat, WithSeed(42))

	r1, err := sim.SimulateRace(context.Background(), teams, 3)
	gtassert.NilError(t, err)
	gtassert.NilError(t, CheckClassification(r1.Classification))
	assert.Len(t, r1.Events, 3)
	assert.NotEmpty(t, r1.Commentary)

	names := map[string]bool{}
	for _, e := range r1.Classification {
		names[e.DriverName] = true
	}
	assert.True(t, names[cat.Drivers[0].Name])
	assert.True(t, names["Guest Team Reserve 2"])

	r2, err := sim.SimulateRace(context.Background(), teams, 3)
	gtassert.NilError(t, err)
	assert.Equal(t, r1, r2, "same input must give the same result")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.SimulateRace(ctx, teams, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_HiredRivalDriver(t *testing.T) {
	cat := catalog.Default()
	verstappen, ok := cat.Driver("d1")
	gtassert.Assert(t, ok)
	other, ok := cat.Driver("d3")
	gtassert.Assert(t, ok)
	teams := []model.Team{testTeam(0, "My Team", verstappen, other)}
	sim := NewSimulator(cat, WithSeed(7))

	for race := range model.SeasonLength {
		r, err := sim.SimulateRace(context.Background(), teams, race)
		gtassert.NilError(t, err)
		gtassert.NilError(t, CheckClassification(r.Classification))
		found := lo.Filter(r.Classification, func(e model.ClassificationEntry, _ int) bool {
			return e.DriverName == verstappen.Name
		})
		gtassert.Assert(t, len(found) == 1, "race %d", race)
		assert.Equal(t, "My Team", found[0].TeamName)
	}
}

func TestSimulator_DuelSameDriver(t *testing.T) {
	cat := catalog.Default()
	senna, ok := cat.Driver("d-senna")
	gtassert.Assert(t, ok)
	teams := []model.Team{
		testTeam(0, "Player 1", senna),
		testTeam(1, "Player 2", senna),
	}
	g := NewGuardedRace(NewSimulator(cat, WithSeed(3)), cat)
	for race := range model.SeasonLength {
		r := g.SimulateRace(context.Background(), teams, race)
		gtassert.Assert(t, r.Commentary != FallbackCommentary, "race %d", race)
		assert.NotEqual(t, r.TeamResults[0].Driver1Position, r.TeamResults[1].Driver1Position, "race %d", race)
	}
}

func TestSimulator_Guarded(t *testing.T) {
	cat := catalog.Default()
	teams := []model.Team{testTeam(0, "My Team", cat.Drivers[0], cat.Drivers[1])}
	g := NewGuardedRace(NewSimulator(cat), cat)
	r := g.SimulateRace(context.Background(), teams, 0)
	assert.Equal(t, "Bahrain Grand Prix", r.RaceName)
	assert.NotEqual(t, FallbackCommentary, r.Commentary)
	gtassert.Assert(t, len(r.TeamResults) == 1)
	tr := r.TeamResults[0]
	assert.NotEqual(t, tr.Driver1Position, tr.Driver2Position)
	assert.Equal(t, model.PointsForPosition(tr.Driver1Position)+model.PointsForPosition(tr.Driver2Position), tr.Points)
}

func TestAdvisor(t *testing.T) {
	cat := catalog.Default()
	full := testTeam(0, "x", cat.Drivers[0], cat.Drivers[1])
	full.Engineers = []model.Engineer{cat.Engineers[0]}
	full.ActiveSponsorIDs = []string{"s1"}
	full.Car = model.CarLevels{Aerodynamics: 3, PowerUnit: 2, Chassis: 4}

	broke := full.Clone()
	broke.Funds = 1_000_000

	tests := []struct {
		name string
		team model.Team
		want string
	}{
		{name: "no drivers", team: testTeam(0, "x"), want: "We need two active drivers on the grid. Check the driver market."},
		{name: "no engineer", team: testTeam(0, "x", cat.Drivers[0], cat.Drivers[1]), want: "Hire an engineer, the car will not develop itself."},
		{name: "upgrade", team: full, want: "Upgrade the powerUnit to level 3, it is our weakest area."},
		{name: "broke", team: broke, want: "Funds are tight at $1.0M. Keep the budget and score points."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Advisor{}.Advice(context.Background(), &tt.team)
			gtassert.NilError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
