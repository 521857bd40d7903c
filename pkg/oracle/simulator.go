package oracle

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/pitwall-go/pkg/catalog"
	"github.com/mpapenbr/pitwall-go/pkg/model"
)

// Simulator is a local race oracle. The outcome depends only on the teams,
// the race index and the seed, so every client computes the same result.
type Simulator struct {
	cat  *catalog.Catalog
	seed uint64
}

type SimulatorOption func(*Simulator)

func WithSeed(seed uint64) SimulatorOption {
	return func(s *Simulator) {
		s.seed = seed
	}
}

var _ RaceOracle = (*Simulator)(nil)

func NewSimulator(cat *catalog.Catalog, opts ...SimulatorOption) *Simulator {
	ret := &Simulator{cat: cat}
	for _, o := range opts {
		o(ret)
	}
	return ret
}

type gridEntry struct {
	driver string
	team   string
	score  float64
}

var eventTemplates = []string{
	"%s makes a brilliant start",
	"Safety car after debris at turn %d",
	"%s loses time with a slow pit stop",
	"Late rain shower catches out %s",
	"%s sets the fastest lap",
	"Virtual safety car on lap %d",
	"%s recovers after a first lap spin",
}

func (s *Simulator) SimulateRace(
	ctx context.Context,
	teams []model.Team,
	raceIndex int,
) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(s.seed, s.mix(teams, raceIndex)))

	grid := make([]gridEntry, 0, model.GridSize)
	humans := map[string]bool{}
	// drivers hired by a management team don't race for their rival team
	hired := map[string]bool{}
	labels := TeamLabels(teams)
	for i := range teams {
		t := &teams[i]
		humans[labels[i]] = true
		active := t.ActiveDrivers()
		for slot := range 2 {
			e := gridEntry{team: labels[i]}
			if slot < len(active) {
				e.driver = active[slot].Name
				e.score = driverScore(&active[slot], t)
				hired[e.driver] = true
			} else {
				e.driver = fmt.Sprintf("%s Reserve %d", t.Name, slot+1)
				e.score = 40 + float64(t.Car.Total())
			}
			e.score += rng.Float64() * 15
			grid = append(grid, e)
		}
	}
	for i, rival := range s.cat.RivalTeams {
		// the calendar order of the rivals reflects their strength
		base := 95 - float64(i)*3
		for _, d := range rival.Drivers {
			if len(grid) >= model.GridSize {
				break
			}
			if hired[d] {
				continue
			}
			grid = append(grid, gridEntry{
				driver: d,
				team:   rival.Name,
				score:  base + rng.Float64()*15,
			})
		}
	}
	for n := 1; len(grid) < model.GridSize; n++ {
		grid = append(grid, gridEntry{
			driver: fmt.Sprintf("Backmarker %d", n),
			team:   "Privateer",
			score:  30 + rng.Float64()*10,
		})
	}
	grid = grid[:model.GridSize]
	sort.SliceStable(grid, func(i, j int) bool { return grid[i].score > grid[j].score })

	classification := lo.Map(grid, func(e gridEntry, i int) model.ClassificationEntry {
		return model.ClassificationEntry{
			DriverName: e.driver,
			TeamName:   e.team,
			Position:   i + 1,
			Points:     model.PointsForPosition(i + 1),
		}
	})
	return &Report{
		Classification: classification,
		Commentary:     s.commentary(classification, humans, raceIndex),
		Events:         s.events(rng, classification),
	}, nil
}

// driverScore rates a driver of a human team. Car levels and engineers
// matter as much as the driver.
func driverScore(d *model.Driver, t *model.Team) float64 {
	staff := lo.SumBy(t.Engineers, func(e model.Engineer) int { return e.Rating })
	return float64(d.Pace)*0.5 +
		float64(d.Consistency)*0.2 +
		float64(d.Experience)*0.1 +
		float64(t.Car.Total())*2 +
		float64(staff)*0.05
}

func (s *Simulator) mix(teams []model.Team, raceIndex int) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d", raceIndex)
	for i := range teams {
		t := &teams[i]
		fmt.Fprintf(h, "|%d|%s|%d|%d|%d|%s|%d",
			t.ID, t.Name, t.Car.Aerodynamics, t.Car.PowerUnit, t.Car.Chassis,
			strings.Join(t.ActiveDriverIDs, ","), len(t.Engineers))
	}
	return h.Sum64()
}

func (s *Simulator) commentary(
	cl []model.ClassificationEntry,
	humans map[string]bool,
	raceIndex int,
) string {
	race := s.cat.RaceName(raceIndex)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s wins the %s for %s, ahead of %s and %s.",
		cl[0].DriverName, race, cl[0].TeamName, cl[1].DriverName, cl[2].DriverName)
	ours := lo.Filter(cl, func(e model.ClassificationEntry, _ int) bool { return humans[e.TeamName] })
	if len(ours) > 0 {
		best := ours[0]
		fmt.Fprintf(&sb, "\n\nBest of the management teams was %s in P%d for %s.",
			best.DriverName, best.Position, best.TeamName)
	}
	teams := lo.Uniq(lo.Map(ours, func(e model.ClassificationEntry, _ int) string { return e.TeamName }))
	if len(teams) > 1 {
		fmt.Fprintf(&sb, " %s and %s fought each other throughout the afternoon.", teams[0], teams[1])
	}
	scorers := lo.CountBy(ours, func(e model.ClassificationEntry) bool { return e.Points > 0 })
	fmt.Fprintf(&sb, "\n\n%d of their drivers finished in the points.", scorers)
	return sb.String()
}

func (s *Simulator) events(rng *rand.Rand, cl []model.ClassificationEntry) []string {
	picked := rng.Perm(len(eventTemplates))[:3]
	return lo.Map(picked, func(idx, _ int) string {
		tmpl := eventTemplates[idx]
		if strings.Contains(tmpl, "%s") {
			return fmt.Sprintf(tmpl, cl[rng.IntN(len(cl))].DriverName)
		}
		return fmt.Sprintf(tmpl, 1+rng.IntN(60))
	})
}
