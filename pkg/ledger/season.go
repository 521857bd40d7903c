// Package ledger keeps the append-only history of settled races.
package ledger

import (
	"errors"
	"sort"

	"github.com/samber/lo"

	"github.com/mpapenbr/pitwall-go/pkg/model"
)

var (
	ErrSeasonComplete = errors.New("season complete")
	ErrInconsistent   = errors.New("race index does not match history")
)

// Season holds the results of all settled races.
// CurrentRaceIndex always equals the number of results.
type Season struct {
	CurrentRaceIndex int                `json:"currentRaceIndex"`
	History          []model.RaceResult `json:"seasonHistory"`
}

func New() Season {
	return Season{History: []model.RaceResult{}}
}

// Restore rebuilds a season from persisted or received data
func Restore(raceIndex int, history []model.RaceResult) (Season, error) {
	if raceIndex != len(history) {
		return Season{}, ErrInconsistent
	}
	return Season{CurrentRaceIndex: raceIndex, History: append([]model.RaceResult{}, history...)}, nil
}

func (s *Season) Complete() bool {
	return s.CurrentRaceIndex >= model.SeasonLength
}

// Append adds the result of the current race and advances the race index
func (s *Season) Append(result *model.RaceResult) error {
	if s.Complete() {
		return ErrSeasonComplete
	}
	s.History = append(s.History, *result)
	s.CurrentRaceIndex = len(s.History)
	return nil
}

func (s *Season) Last() (model.RaceResult, bool) {
	if len(s.History) == 0 {
		return model.RaceResult{}, false
	}
	return s.History[len(s.History)-1], true
}

func (s Season) Clone() Season {
	return Season{
		CurrentRaceIndex: s.CurrentRaceIndex,
		History:          append([]model.RaceResult{}, s.History...),
	}
}

type TeamStanding struct {
	TeamID     int
	Points     int
	Wins       int
	Podiums    int
	BestFinish int // 0 if the team has no result yet
	Races      int
}

// TeamStandings aggregates the team results of the season, ordered by
// points, then wins, then best finish.
func (s *Season) TeamStandings() []TeamStanding {
	byTeam := map[int]*TeamStanding{}
	for i := range s.History {
		for _, tr := range s.History[i].TeamResults {
			st, ok := byTeam[tr.TeamID]
			if !ok {
				st = &TeamStanding{TeamID: tr.TeamID}
				byTeam[tr.TeamID] = st
			}
			st.Races++
			st.Points += tr.Points
			best := tr.BestPosition()
			if best == 1 {
				st.Wins++
			}
			if best >= 1 && best <= 3 {
				st.Podiums++
			}
			if best >= 1 && (st.BestFinish == 0 || best < st.BestFinish) {
				st.BestFinish = best
			}
		}
	}
	ret := lo.Map(lo.Values(byTeam), func(st *TeamStanding, _ int) TeamStanding { return *st })
	sort.SliceStable(ret, func(i, j int) bool {
		a, b := ret[i], ret[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.BestFinish != b.BestFinish {
			return a.BestFinish < b.BestFinish
		}
		return a.TeamID < b.TeamID
	})
	return ret
}

type DriverStanding struct {
	DriverName string
	TeamName   string
	Points     int
	Wins       int
}

// DriverStandings aggregates the full classifications of the season.
// The team name is the one of the latest classification.
func (s *Season) DriverStandings() []DriverStanding {
	idx := map[string]int{}
	ret := []DriverStanding{}
	for i := range s.History {
		for _, e := range s.History[i].FullClassification {
			pos, ok := idx[e.DriverName]
			if !ok {
				pos = len(ret)
				idx[e.DriverName] = pos
				ret = append(ret, DriverStanding{DriverName: e.DriverName})
			}
			ret[pos].TeamName = e.TeamName
			ret[pos].Points += e.Points
			if e.Position == 1 {
				ret[pos].Wins++
			}
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].Points != ret[j].Points {
			return ret[i].Points > ret[j].Points
		}
		return ret[i].Wins > ret[j].Wins
	})
	return ret
}
