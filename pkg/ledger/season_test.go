//nolint:funlen // ok for tests
package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/pitwall-go/pkg/model"
)

func race(name string, trs ...model.TeamResult) *model.RaceResult {
	return &model.RaceResult{RaceName: name, TeamResults: trs}
}

func TestSeason_Append(t *testing.T) {
	s := New()
	assert.False(t, s.Complete())
	_, ok := s.Last()
	assert.False(t, ok)

	for i := 0; i < model.SeasonLength; i++ {
		assert.NoError(t, s.Append(race(fmt.Sprintf("race %d", i))))
		assert.Equal(t, i+1, s.CurrentRaceIndex)
		assert.Len(t, s.History, s.CurrentRaceIndex)
	}
	assert.True(t, s.Complete())
	assert.ErrorIs(t, s.Append(race("extra")), ErrSeasonComplete)
	assert.Equal(t, model.SeasonLength, s.CurrentRaceIndex)

	last, ok := s.Last()
	assert.True(t, ok)
	assert.Equal(t, "race 9", last.RaceName)
}

func TestRestore(t *testing.T) {
	_, err := Restore(2, []model.RaceResult{{RaceName: "a"}})
	assert.ErrorIs(t, err, ErrInconsistent)

	s, err := Restore(1, []model.RaceResult{{RaceName: "a"}})
	assert.NoError(t, err)
	assert.Equal(t, 1, s.CurrentRaceIndex)
}

func TestSeason_Clone(t *testing.T) {
	s := New()
	assert.NoError(t, s.Append(race("a")))
	c := s.Clone()
	assert.NoError(t, c.Append(race("b")))
	assert.Equal(t, 1, s.CurrentRaceIndex)
	assert.Len(t, s.History, 1)
}

func TestSeason_TeamStandings(t *testing.T) {
	s := New()
	assert.NoError(t, s.Append(race("r1",
		model.TeamResult{TeamID: 0, Driver1Position: 1, Driver2Position: 5, Points: 35},
		model.TeamResult{TeamID: 1, Driver1Position: 2, Driver2Position: 3, Points: 33},
	)))
	assert.NoError(t, s.Append(race("r2",
		model.TeamResult{TeamID: 0, Driver1Position: 12, Driver2Position: 15, Points: 0},
		model.TeamResult{TeamID: 1, Driver1Position: 1, Driver2Position: 8, Points: 29},
	)))
	got := s.TeamStandings()
	assert.Equal(t, []TeamStanding{
		{TeamID: 1, Points: 62, Wins: 1, Podiums: 2, BestFinish: 1, Races: 2},
		{TeamID: 0, Points: 35, Wins: 1, Podiums: 1, BestFinish: 1, Races: 2},
	}, got)
}

func TestSeason_DriverStandings(t *testing.T) {
	s := New()
	r1 := race("r1")
	r1.FullClassification = []model.ClassificationEntry{
		{DriverName: "A", TeamName: "T1", Position: 1, Points: 25},
		{DriverName: "B", TeamName: "T2", Position: 2, Points: 18},
	}
	r2 := race("r2")
	r2.FullClassification = []model.ClassificationEntry{
		{DriverName: "B", TeamName: "T3", Position: 1, Points: 25},
		{DriverName: "A", TeamName: "T1", Position: 2, Points: 18},
	}
	assert.NoError(t, s.Append(r1))
	assert.NoError(t, s.Append(r2))
	got := s.DriverStandings()
	assert.Equal(t, []DriverStanding{
		{DriverName: "A", TeamName: "T1", Points: 43, Wins: 1},
		{DriverName: "B", TeamName: "T3", Points: 43, Wins: 1},
	}, got)
}
