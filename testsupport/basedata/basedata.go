package basedata

import (
	"github.com/mpapenbr/pitwall-go/pkg/catalog"
	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/session"
)

// SampleTeam is a team with two active drivers, an engineer and a sponsor
func SampleTeam(id int, name string) model.Team {
	cat := catalog.Default()
	t := cat.NewTeam(id, name, "#ef4444")
	t.Drivers = []model.Driver{cat.Drivers[id*2], cat.Drivers[id*2+1]}
	t.ActiveDriverIDs = []string{t.Drivers[0].ID, t.Drivers[1].ID}
	t.Engineers = []model.Engineer{cat.Engineers[id]}
	t.ActiveSponsorIDs = []string{"s1"}
	t.SponsorOffers = t.SponsorOffers[1:]
	t.Funds -= t.Drivers[0].Cost + t.Drivers[1].Cost + t.Engineers[0].Cost
	return t
}

func SampleRace() model.RaceResult {
	return model.RaceResult{
		RaceName: "Bahrain Grand Prix",
		TeamResults: []model.TeamResult{
			{TeamID: 0, Driver1Position: 4, Driver2Position: 9, Points: 14},
			{TeamID: 1, Driver1Position: 12, Driver2Position: 6, Points: 8},
		},
		Commentary: "A close race.",
		Events:     []string{"Safety car", "Rain", "Fastest lap"},
		FullClassification: []model.ClassificationEntry{
			{DriverName: "Max Verstappen", TeamName: "Red Bull Racing", Position: 1, Points: 25},
		},
	}
}

// SampleSolo is a solo session after one settled race
func SampleSolo() session.State {
	s := session.NewSolo(SampleTeam(0, "My Team"))
	r := SampleRace()
	r.TeamResults = r.TeamResults[:1]
	_ = s.Season.Append(&r)
	return s
}

// SampleDuel is a duel session with the second player on turn
func SampleDuel() session.State {
	s := session.NewDuel(SampleTeam(0, "Player 1"), SampleTeam(1, "Player 2"))
	r := SampleRace()
	_ = s.Season.Append(&r)
	s.CurrentTeamIndex = 1
	return s
}
