//nolint:funlen // ok for tests
package oracle

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	gtassert "gotest.tools/v3/assert"

	"github.com/mpapenbr/pitwall-go/pkg/catalog"
	"github.com/mpapenbr/pitwall-go/pkg/model"
)

func testTeam(id int, name string, drivers ...model.Driver) model.Team {
	t := catalog.Default().NewTeam(id, name, "#fff")
	for _, d := range drivers {
		t.Drivers = append(t.Drivers, d)
		t.ActiveDriverIDs = append(t.ActiveDriverIDs, d.ID)
	}
	return t
}

// classification with the given drivers at the front
func classification(names ...string) []model.ClassificationEntry {
	ret := make([]model.ClassificationEntry, 0, model.GridSize)
	for i := range model.GridSize {
		name := fmt.Sprintf("Rival %d", i+1)
		if i < len(names) {
			name = names[i]
		}
		ret = append(ret, model.ClassificationEntry{DriverName: name, TeamName: "x", Position: i + 1})
	}
	return ret
}

func staticOracle(r *Report, err error) RaceOracle {
	return RaceOracleFunc(func(context.Context, []model.Team, int) (*Report, error) {
		return r, err
	})
}

func TestCheckClassification(t *testing.T) {
	dup := classification()
	dup[3].Position = 1
	outOfRange := classification()
	outOfRange[19].Position = 21
	sameDriver := classification()
	sameDriver[5].DriverName = sameDriver[0].DriverName
	otherTeam := classification("Ayrton Senna", "Ayrton Senna")
	otherTeam[1].TeamName = "y"

	tests := []struct {
		name    string
		entries []model.ClassificationEntry
		wantErr bool
	}{
		{name: "empty", entries: nil},
		{name: "full", entries: classification()},
		{name: "short", entries: classification()[:19], wantErr: true},
		{name: "duplicate", entries: dup, wantErr: true},
		{name: "range", entries: outOfRange, wantErr: true},
		{name: "driver twice", entries: sameDriver, wantErr: true},
		{name: "driver for two teams", entries: otherTeam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckClassification(tt.entries)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClassification)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGuardedRace(t *testing.T) {
	cat := catalog.Default()
	d1 := model.Driver{ID: "a", Name: "Alpha"}
	d2 := model.Driver{ID: "b", Name: "Beta"}
	d3 := model.Driver{ID: "c", Name: "Gamma"}
	teams := []model.Team{testTeam(0, "Host Team", d1, d2), testTeam(1, "Guest Team", d3)}

	fallback := &model.RaceResult{
		RaceName: "Saudi Arabian Grand Prix",
		TeamResults: []model.TeamResult{
			{TeamID: 0, Driver1Position: 15, Driver2Position: 18},
			{TeamID: 1, Driver1Position: 15, Driver2Position: 18},
		},
		Commentary:         "Simulation error.",
		Events:             []string{"Technical glitch"},
		FullClassification: []model.ClassificationEntry{},
	}

	tests := []struct {
		name   string
		oracle RaceOracle
		want   func(t *testing.T, r *model.RaceResult)
	}{
		{
			name:   "error",
			oracle: staticOracle(nil, errors.New("timeout")),
			want: func(t *testing.T, r *model.RaceResult) {
				t.Helper()
				assert.Empty(t, cmp.Diff(fallback, r))
			},
		},
		{
			name:   "nil report",
			oracle: staticOracle(nil, nil),
			want: func(t *testing.T, r *model.RaceResult) {
				t.Helper()
				assert.Empty(t, cmp.Diff(fallback, r))
			},
		},
		{
			name:   "duplicate positions",
			oracle: staticOracle(&Report{Classification: append(classification()[:19], classification()[0])}, nil),
			want: func(t *testing.T, r *model.RaceResult) {
				t.Helper()
				assert.Empty(t, cmp.Diff(fallback, r))
			},
		},
		{
			name: "valid",
			oracle: staticOracle(&Report{
				Classification: classification("Gamma", "Rival", "Beta", "x", "y", "z", "Alpha"),
				Commentary:     "What a race",
				Events:         []string{"e1", "e2", "e3"},
			}, nil),
			want: func(t *testing.T, r *model.RaceResult) {
				t.Helper()
				assert.Equal(t, "Saudi Arabian Grand Prix", r.RaceName)
				assert.Equal(t, []model.TeamResult{
					{TeamID: 0, Driver1Position: 7, Driver2Position: 3, Points: 6 + 15},
					// second driver missing
					{TeamID: 1, Driver1Position: 1, Driver2Position: 18, Points: 25},
				}, r.TeamResults)
				assert.Equal(t, "What a race", r.Commentary)
				assert.Len(t, r.FullClassification, 20)
				assert.Equal(t, 18, r.FullClassification[1].Points)
				assert.Equal(t, 0, r.FullClassification[19].Points)
			},
		},
		{
			name:   "empty classification",
			oracle: staticOracle(&Report{Commentary: "quiet"}, nil),
			want: func(t *testing.T, r *model.RaceResult) {
				t.Helper()
				assert.Equal(t, "quiet", r.Commentary)
				for _, tr := range r.TeamResults {
					assert.Equal(t, 15, tr.Driver1Position)
					assert.Equal(t, 18, tr.Driver2Position)
					assert.Equal(t, 0, tr.Points)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuardedRace(tt.oracle, cat)
			tt.want(t, g.SimulateRace(context.Background(), teams, 1))
		})
	}
}

func TestCompose_SharedDriver(t *testing.T) {
	senna := model.Driver{ID: "d-senna", Name: "Ayrton Senna"}
	prost := model.Driver{ID: "d-prost", Name: "Alain Prost"}
	cl := classification("Rival", "Ayrton Senna", "Alain Prost", "x", "y", "z", "w", "v", "Ayrton Senna")

	tests := []struct {
		name  string
		teams []model.Team
		want  []model.TeamResult
	}{
		{
			name:  "different team names",
			teams: []model.Team{testTeam(0, "Player 1", senna, prost), testTeam(1, "Player 2", senna)},
			want: []model.TeamResult{
				{TeamID: 0, Driver1Position: 2, Driver2Position: 3, Points: 18 + 15},
				{TeamID: 1, Driver1Position: 9, Driver2Position: 18, Points: 2},
			},
		},
		{
			name:  "same team names",
			teams: []model.Team{testTeam(0, "Racers", senna, prost), testTeam(1, "Racers", senna)},
			want: []model.TeamResult{
				{TeamID: 0, Driver1Position: 2, Driver2Position: 3, Points: 18 + 15},
				{TeamID: 1, Driver1Position: 9, Driver2Position: 18, Points: 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := TeamLabels(tt.teams)
			entries := append([]model.ClassificationEntry{}, cl...)
			entries[1].TeamName = labels[0]
			entries[2].TeamName = labels[0]
			entries[8].TeamName = labels[1]
			gtassert.NilError(t, CheckClassification(entries))
			got := Compose(tt.teams, "Monaco Grand Prix", &Report{Classification: entries})
			assert.Equal(t, tt.want, got.TeamResults)
		})
	}
}

func TestTeamLabels(t *testing.T) {
	assert.Equal(t, []string{"A", "B"},
		TeamLabels([]model.Team{{ID: 0, Name: "A"}, {ID: 1, Name: "B"}}))
	assert.Equal(t, []string{"A #1", "A #2"},
		TeamLabels([]model.Team{{ID: 0, Name: "A"}, {ID: 1, Name: "A"}}))
}

func TestGuardedAdvice(t *testing.T) {
	team := testTeam(0, "x")
	tests := []struct {
		name string
		text string
		err  error
		want string
	}{
		{name: "ok", text: "Go faster", want: "Go faster"},
		{name: "empty", text: "", want: FallbackAdvice},
		{name: "error", text: "ignored", err: errors.New("down"), want: FallbackAdvice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuardedAdvice(AdviceOracleFunc(func(context.Context, *model.Team) (string, error) {
				return tt.text, tt.err
			}))
			gtassert.Equal(t, tt.want, g.Advice(context.Background(), &team))
		})
	}
}
