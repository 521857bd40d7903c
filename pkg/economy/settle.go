// Package economy computes the financial outcome of a race.
package economy

import (
	"github.com/samber/lo"

	"github.com/mpapenbr/pitwall-go/pkg/model"
)

const (
	PrizePerPosition int64 = 300_000
	AppearanceFee    int64 = 2_000_000
	MaxReputation          = 100
	// reputation is gained for finishing better than this position
	ReputationThreshold = 10
)

// SponsorLookup resolves active sponsor ids to their contracts
type SponsorLookup interface {
	Sponsor(id string) (model.Sponsor, bool)
}

// SponsorList is a SponsorLookup over a plain slice
type SponsorList []model.Sponsor

func (l SponsorList) Sponsor(id string) (model.Sponsor, bool) {
	return lo.Find(l, func(s model.Sponsor) bool { return s.ID == id })
}

// Payout describes what a team received for a race
type Payout struct {
	TeamID          int
	BestPosition    int
	Prize           int64
	Appearance      int64
	SponsorIncome   int64
	PaidSponsors    []string
	ReputationDelta int
}

func (p Payout) Total() int64 {
	return p.Prize + p.Appearance + p.SponsorIncome
}

// BestPosition returns the best finishing position of the team in the
// result. A missing entry or a position outside the grid counts as last.
func BestPosition(result *model.RaceResult, teamID int) int {
	tr, ok := result.TeamResult(teamID)
	if !ok {
		return model.GridSize
	}
	return min(sanitize(tr.Driver1Position), sanitize(tr.Driver2Position))
}

func sanitize(pos int) int {
	if pos < 1 || pos > model.GridSize {
		return model.GridSize
	}
	return pos
}

// Compute calculates the payout of a single team without changing it
func Compute(team *model.Team, result *model.RaceResult, sponsors SponsorLookup) Payout {
	best := BestPosition(result, team.ID)
	p := Payout{
		TeamID:          team.ID,
		BestPosition:    best,
		Prize:           int64(model.GridSize+1-best) * PrizePerPosition,
		Appearance:      AppearanceFee,
		PaidSponsors:    []string{},
		ReputationDelta: max(0, ReputationThreshold-best),
	}
	for _, id := range team.ActiveSponsorIDs {
		s, ok := sponsors.Sponsor(id)
		if !ok {
			continue
		}
		if best <= s.TargetPosition {
			p.SponsorIncome += s.PayoutPerRace
			p.PaidSponsors = append(p.PaidSponsors, id)
		}
	}
	return p
}

// Settle applies the race result to copies of the teams. The input is not
// modified. Missed sponsor targets pay nothing but keep the contract.
func Settle(
	teams []model.Team,
	result *model.RaceResult,
	sponsors SponsorLookup,
) (settled []model.Team, payouts []Payout) {
	settled = model.CloneTeams(teams)
	payouts = make([]Payout, len(settled))
	for i := range settled {
		p := Compute(&settled[i], result, sponsors)
		settled[i].Funds += p.Total()
		settled[i].Reputation = lo.Clamp(settled[i].Reputation+p.ReputationDelta, 0, MaxReputation)
		payouts[i] = p
	}
	return settled, payouts
}
