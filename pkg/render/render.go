// Package render prints game data as text tables.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/mpapenbr/pitwall-go/pkg/catalog"
	"github.com/mpapenbr/pitwall-go/pkg/economy"
	"github.com/mpapenbr/pitwall-go/pkg/ledger"
	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/utils"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

func mark(ok bool) string {
	if ok {
		return "*"
	}
	return ""
}

// Team prints the overview of a team
func Team(w io.Writer, team *model.Team) {
	t := newTable(w, team.Name)
	t.AppendRows([]table.Row{
		{"Funds", utils.FormatMoney(team.Funds)},
		{"Reputation", team.Reputation},
		{"Aerodynamics", team.Car.Aerodynamics},
		{"Power unit", team.Car.PowerUnit},
		{"Chassis", team.Car.Chassis},
		{"Staff", fmt.Sprintf("%d/3", len(team.Engineers))},
		{"Sponsors", strings.Join(team.ActiveSponsorIDs, ", ")},
	})
	t.Render()

	d := newTable(w, "Drivers")
	d.AppendHeader(table.Row{"Active", "ID", "Name", "Pace", "Consistency", "Cost"})
	for i := range team.Drivers {
		dr := &team.Drivers[i]
		d.AppendRow(table.Row{
			mark(lo.Contains(team.ActiveDriverIDs, dr.ID)),
			dr.ID, dr.Name, dr.Pace, dr.Consistency, utils.FormatMoney(dr.Cost),
		})
	}
	d.Render()
}

// Market prints the drivers and engineers of the catalog. Entries already
// owned by the team are marked.
func Market(w io.Writer, cat *catalog.Catalog, team *model.Team) {
	d := newTable(w, "Driver market")
	d.AppendHeader(table.Row{"Owned", "ID", "Name", "Age", "Nation", "Pace", "Cons", "Cost"})
	for i := range cat.Drivers {
		dr := &cat.Drivers[i]
		owned := lo.ContainsBy(team.Drivers, func(o model.Driver) bool { return o.ID == dr.ID })
		d.AppendRow(table.Row{
			mark(owned), dr.ID, dr.Name, dr.Age, dr.Nationality,
			dr.Pace, dr.Consistency, utils.FormatMoney(dr.Cost),
		})
	}
	d.Render()

	e := newTable(w, "Engineers")
	e.AppendHeader(table.Row{"Hired", "ID", "Name", "Specialty", "Rating", "Cost"})
	for i := range cat.Engineers {
		en := &cat.Engineers[i]
		hired := lo.ContainsBy(team.Engineers, func(o model.Engineer) bool { return o.ID == en.ID })
		e.AppendRow(table.Row{
			mark(hired), en.ID, en.Name, en.Specialty, en.Rating, utils.FormatMoney(en.Cost),
		})
	}
	e.Render()
}

// Sponsors prints active contracts and pending offers
func Sponsors(w io.Writer, cat *catalog.Catalog, team *model.Team) {
	t := newTable(w, "Sponsors")
	t.AppendHeader(table.Row{"State", "ID", "Name", "Category", "Per race", "Target"})
	for _, id := range team.ActiveSponsorIDs {
		if s, ok := cat.Sponsor(id); ok {
			t.AppendRow(table.Row{"active", s.ID, s.Name, s.Category,
				utils.FormatMoney(s.PayoutPerRace), fmt.Sprintf("P%d", s.TargetPosition)})
		}
	}
	for _, s := range team.SponsorOffers {
		t.AppendRow(table.Row{"offer", s.ID, s.Name, s.Category,
			utils.FormatMoney(s.PayoutPerRace), fmt.Sprintf("P%d", s.TargetPosition)})
	}
	t.Render()
}

// Race prints the classification and the incidents of a race
func Race(w io.Writer, result *model.RaceResult) {
	t := newTable(w, result.RaceName)
	t.AppendHeader(table.Row{"Pos", "Driver", "Team", "Pts"})
	for _, e := range result.FullClassification {
		t.AppendRow(table.Row{e.Position, e.DriverName, e.TeamName, e.Points})
	}
	t.Render()
	if result.Commentary != "" {
		fmt.Fprintln(w, result.Commentary)
	}
	for _, ev := range result.Events {
		fmt.Fprintf(w, " - %s\n", ev)
	}
}

// Payouts prints the settlement of a race per team
func Payouts(w io.Writer, teams []model.Team, payouts []economy.Payout) {
	t := newTable(w, "Payouts")
	t.AppendHeader(table.Row{"Team", "Best", "Prize", "Appearance", "Sponsors", "Total", "Rep"})
	for _, p := range payouts {
		name := teamName(teams, p.TeamID)
		t.AppendRow(table.Row{
			name, fmt.Sprintf("P%d", p.BestPosition),
			utils.FormatMoney(p.Prize), utils.FormatMoney(p.Appearance),
			utils.FormatMoney(p.SponsorIncome), utils.FormatMoney(p.Total()),
			fmt.Sprintf("%+d", p.ReputationDelta),
		})
	}
	t.Render()
}

// Standings prints the team and driver standings of the season
func Standings(w io.Writer, season *ledger.Season, teams []model.Team) {
	t := newTable(w, fmt.Sprintf("Teams after %d/%d races", season.CurrentRaceIndex, model.SeasonLength))
	t.AppendHeader(table.Row{"#", "Team", "Pts", "Wins", "Podiums", "Best"})
	for i, st := range season.TeamStandings() {
		best := "-"
		if st.BestFinish > 0 {
			best = fmt.Sprintf("P%d", st.BestFinish)
		}
		t.AppendRow(table.Row{i + 1, teamName(teams, st.TeamID), st.Points, st.Wins, st.Podiums, best})
	}
	t.Render()

	d := newTable(w, "Drivers")
	d.AppendHeader(table.Row{"#", "Driver", "Team", "Pts", "Wins"})
	for i, st := range season.DriverStandings() {
		d.AppendRow(table.Row{i + 1, st.DriverName, st.TeamName, st.Points, st.Wins})
	}
	d.Render()
}

func teamName(teams []model.Team, id int) string {
	if t, ok := lo.Find(teams, func(t model.Team) bool { return t.ID == id }); ok {
		return t.Name
	}
	return fmt.Sprintf("team %d", id)
}
