package model

// catalog entries, immutable once loaded
type (
	Driver struct {
		ID            string `json:"id" yaml:"id"`
		Name          string `json:"name" yaml:"name"`
		Nationality   string `json:"nationality" yaml:"nationality"`
		Age           int    `json:"age" yaml:"age"`
		Pace          int    `json:"pace" yaml:"pace"`
		Consistency   int    `json:"consistency" yaml:"consistency"`
		Marketability int    `json:"marketability" yaml:"marketability"`
		Experience    int    `json:"experience" yaml:"experience"`
		Salary        int64  `json:"salary" yaml:"salary"`
		Cost          int64  `json:"cost" yaml:"cost"`
	}

	Engineer struct {
		ID        string `json:"id" yaml:"id"`
		Name      string `json:"name" yaml:"name"`
		Specialty string `json:"specialty" yaml:"specialty"`
		Rating    int    `json:"rating" yaml:"rating"`
		Salary    int64  `json:"salary" yaml:"salary"`
		Cost      int64  `json:"cost" yaml:"cost"`
	}

	Sponsor struct {
		ID            string `json:"id" yaml:"id"`
		Name          string `json:"name" yaml:"name"`
		Category      string `json:"category" yaml:"category"`
		PayoutPerRace int64  `json:"payoutPerRace" yaml:"payoutPerRace"`
		SigningBonus  int64  `json:"signingBonus" yaml:"signingBonus"`
		// the team has to finish at this position or better to get paid
		TargetPosition int `json:"targetPosition" yaml:"targetPosition"`
	}
)

// Team is mutated only by the participant owning the current turn.
// Cross team effects happen only during race settlement.
type Team struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Color            string     `json:"color"`
	Funds            int64      `json:"funds"`
	Reputation       int        `json:"reputation"`
	Car              CarLevels  `json:"car"`
	Drivers          []Driver   `json:"drivers"`
	ActiveDriverIDs  []string   `json:"activeDriverIds"`
	Engineers        []Engineer `json:"engineers"`
	ActiveSponsorIDs []string   `json:"activeSponsorIds"`
	SponsorOffers    []Sponsor  `json:"sponsorOffers"`
}

// Clone returns a deep copy. Catalog entries are values, so copying the
// slices is sufficient.
func (t Team) Clone() Team {
	ret := t
	ret.Drivers = append([]Driver{}, t.Drivers...)
	ret.ActiveDriverIDs = append([]string{}, t.ActiveDriverIDs...)
	ret.Engineers = append([]Engineer{}, t.Engineers...)
	ret.ActiveSponsorIDs = append([]string{}, t.ActiveSponsorIDs...)
	ret.SponsorOffers = append([]Sponsor{}, t.SponsorOffers...)
	return ret
}

// ActiveDrivers returns the active drivers in activation order
func (t *Team) ActiveDrivers() []Driver {
	ret := make([]Driver, 0, len(t.ActiveDriverIDs))
	for _, id := range t.ActiveDriverIDs {
		for i := range t.Drivers {
			if t.Drivers[i].ID == id {
				ret = append(ret, t.Drivers[i])
			}
		}
	}
	return ret
}

func CloneTeams(teams []Team) []Team {
	ret := make([]Team, len(teams))
	for i := range teams {
		ret[i] = teams[i].Clone()
	}
	return ret
}
