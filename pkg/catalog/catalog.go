package catalog

import (
	"github.com/samber/lo"

	"github.com/mpapenbr/pitwall-go/pkg/model"
)

const (
	InitialFunds      int64 = 50_000_000
	InitialReputation       = 10
	// upgrade cost per current level of the part
	UpgradeCostPerLevel int64 = 5_000_000
)

type (
	RivalTeam struct {
		Name    string   `yaml:"name"`
		Color   string   `yaml:"color"`
		Drivers []string `yaml:"drivers"`
	}

	// Catalog holds the fixed market data of a season
	Catalog struct {
		Drivers    []model.Driver   `yaml:"drivers"`
		Engineers  []model.Engineer `yaml:"engineers"`
		Sponsors   []model.Sponsor  `yaml:"sponsors"`
		RivalTeams []RivalTeam      `yaml:"rivalTeams"`
		Races      []string         `yaml:"races"`
	}
)

func (c *Catalog) Driver(id string) (model.Driver, bool) {
	return lo.Find(c.Drivers, func(d model.Driver) bool { return d.ID == id })
}

func (c *Catalog) Engineer(id string) (model.Engineer, bool) {
	return lo.Find(c.Engineers, func(e model.Engineer) bool { return e.ID == id })
}

// Sponsor satisfies economy.SponsorLookup
func (c *Catalog) Sponsor(id string) (model.Sponsor, bool) {
	return lo.Find(c.Sponsors, func(s model.Sponsor) bool { return s.ID == id })
}

// RaceName returns the name of the race for the given season index.
// The calendar wraps around if the index exceeds it.
func (c *Catalog) RaceName(raceIndex int) string {
	if len(c.Races) == 0 {
		return "Grand Prix"
	}
	return c.Races[raceIndex%len(c.Races)]
}

// UpgradeCost is the price to raise a part from its current level
func UpgradeCost(currentLevel int) int64 {
	return UpgradeCostPerLevel * int64(max(currentLevel, 1))
}

// NewTeam creates a team in its initial state. Pending sponsor offers are
// seeded with the full sponsor catalog.
func (c *Catalog) NewTeam(id int, name, color string) model.Team {
	return model.Team{
		ID:               id,
		Name:             name,
		Color:            color,
		Funds:            InitialFunds,
		Reputation:       InitialReputation,
		Car:              model.CarLevels{Aerodynamics: 1, PowerUnit: 1, Chassis: 1},
		Drivers:          []model.Driver{},
		ActiveDriverIDs:  []string{},
		Engineers:        []model.Engineer{},
		ActiveSponsorIDs: []string{},
		SponsorOffers:    append([]model.Sponsor{}, c.Sponsors...),
	}
}
