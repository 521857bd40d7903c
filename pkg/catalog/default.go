//nolint:lll,dupl // catalog data
package catalog

import "github.com/mpapenbr/pitwall-go/pkg/model"

// Default returns the built-in catalog. Each call returns a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Drivers:    append([]model.Driver{}, defaultDrivers...),
		Engineers:  append([]model.Engineer{}, defaultEngineers...),
		Sponsors:   append([]model.Sponsor{}, defaultSponsors...),
		RivalTeams: append([]RivalTeam{}, defaultRivals...),
		Races:      append([]string{}, defaultRaces...),
	}
}

var defaultRaces = []string{
	"Bahrain Grand Prix",
	"Saudi Arabian Grand Prix",
	"Australian Grand Prix",
	"Azerbaijan Grand Prix",
	"Miami Grand Prix",
	"Monaco Grand Prix",
	"Spanish Grand Prix",
	"Canadian Grand Prix",
	"Austrian Grand Prix",
	"British Grand Prix",
}

var defaultRivals = []RivalTeam{
	{Name: "Red Bull Racing", Color: "#0600ef", Drivers: []string{"Max Verstappen", "Sergio Perez"}},
	{Name: "Ferrari", Color: "#ef1a2d", Drivers: []string{"Charles Leclerc", "Carlos Sainz"}},
	{Name: "Mercedes", Color: "#00d2be", Drivers: []string{"Lewis Hamilton", "George Russell"}},
	{Name: "McLaren", Color: "#ff8700", Drivers: []string{"Lando Norris", "Oscar Piastri"}},
	{Name: "Aston Martin", Color: "#006f62", Drivers: []string{"Fernando Alonso", "Lance Stroll"}},
	{Name: "Alpine", Color: "#0090ff", Drivers: []string{"Pierre Gasly", "Esteban Ocon"}},
	{Name: "Williams", Color: "#005aff", Drivers: []string{"Alex Albon", "Franco Colapinto"}},
	{Name: "RB Visa", Color: "#6692ff", Drivers: []string{"Yuki Tsunoda", "Liam Lawson"}},
	{Name: "Haas", Color: "#ffffff", Drivers: []string{"Nico Hulkenberg", "Kevin Magnussen"}},
	{Name: "Kick Sauber", Color: "#52e252", Drivers: []string{"Valtteri Bottas", "Zhou Guanyu"}},
}

var defaultDrivers = []model.Driver{
	// legends
	{ID: "d-senna", Name: "Ayrton Senna", Age: 34, Nationality: "Brazil", Pace: 99, Consistency: 92, Marketability: 100, Experience: 95, Salary: 20_000_000, Cost: 55_000_000},
	{ID: "d-schumacher", Name: "Michael Schumacher", Age: 35, Nationality: "Germany", Pace: 98, Consistency: 99, Marketability: 100, Experience: 99, Salary: 20_000_000, Cost: 55_000_000},
	{ID: "d-vettel", Name: "Sebastian Vettel", Age: 35, Nationality: "Germany", Pace: 94, Consistency: 90, Marketability: 95, Experience: 98, Salary: 15_000_000, Cost: 40_000_000},
	{ID: "d-prost", Name: "Alain Prost", Age: 38, Nationality: "France", Pace: 97, Consistency: 100, Marketability: 85, Experience: 99, Salary: 18_000_000, Cost: 48_000_000},
	{ID: "d-lauda", Name: "Niki Lauda", Age: 35, Nationality: "Austria", Pace: 96, Consistency: 98, Marketability: 90, Experience: 99, Salary: 17_000_000, Cost: 45_000_000},
	{ID: "d-fangio", Name: "Juan Manuel Fangio", Age: 40, Nationality: "Argentina", Pace: 99, Consistency: 95, Marketability: 80, Experience: 99, Salary: 25_000_000, Cost: 60_000_000},
	// current elite
	{ID: "d1", Name: "Max Verstappen", Age: 26, Nationality: "Netherlands", Pace: 97, Consistency: 95, Marketability: 98, Experience: 85, Salary: 15_000_000, Cost: 50_000_000},
	{ID: "d3", Name: "Lewis Hamilton", Age: 39, Nationality: "United Kingdom", Pace: 94, Consistency: 96, Marketability: 99, Experience: 99, Salary: 18_000_000, Cost: 42_000_000},
	{ID: "d5", Name: "Charles Leclerc", Age: 26, Nationality: "Monaco", Pace: 93, Consistency: 88, Marketability: 95, Experience: 82, Salary: 13_000_000, Cost: 35_000_000},
	{ID: "d9", Name: "Fernando Alonso", Age: 42, Nationality: "Spain", Pace: 91, Consistency: 94, Marketability: 92, Experience: 99, Salary: 11_000_000, Cost: 28_000_000},
	{ID: "d7", Name: "Lando Norris", Age: 24, Nationality: "United Kingdom", Pace: 92, Consistency: 90, Marketability: 94, Experience: 78, Salary: 9_000_000, Cost: 32_000_000},
	// mid field
	{ID: "d2", Name: "Sergio Perez", Age: 34, Nationality: "Mexico", Pace: 86, Consistency: 82, Marketability: 95, Experience: 92, Salary: 7_000_000, Cost: 18_000_000},
	{ID: "d4", Name: "George Russell", Age: 26, Nationality: "United Kingdom", Pace: 90, Consistency: 89, Marketability: 88, Experience: 80, Salary: 8_000_000, Cost: 26_000_000},
	{ID: "d6", Name: "Carlos Sainz", Age: 29, Nationality: "Spain", Pace: 91, Consistency: 92, Marketability: 90, Experience: 88, Salary: 9_500_000, Cost: 30_000_000},
	{ID: "d8", Name: "Oscar Piastri", Age: 23, Nationality: "Australia", Pace: 89, Consistency: 88, Marketability: 86, Experience: 50, Salary: 5_000_000, Cost: 22_000_000},
	{ID: "d13", Name: "Alex Albon", Age: 28, Nationality: "Thailand", Pace: 87, Consistency: 89, Marketability: 82, Experience: 70, Salary: 4_000_000, Cost: 12_000_000},
	{ID: "d15", Name: "Pierre Gasly", Age: 28, Nationality: "France", Pace: 86, Consistency: 85, Marketability: 84, Experience: 75, Salary: 4_500_000, Cost: 13_000_000},
	{ID: "d16", Name: "Esteban Ocon", Age: 27, Nationality: "France", Pace: 85, Consistency: 84, Marketability: 80, Experience: 78, Salary: 4_000_000, Cost: 11_000_000},
	{ID: "d17", Name: "Daniel Ricciardo", Age: 34, Nationality: "Australia", Pace: 85, Consistency: 80, Marketability: 98, Experience: 95, Salary: 6_000_000, Cost: 15_000_000},
	{ID: "d18", Name: "Valtteri Bottas", Age: 34, Nationality: "Finland", Pace: 86, Consistency: 88, Marketability: 85, Experience: 94, Salary: 5_000_000, Cost: 14_000_000},
	{ID: "d19", Name: "Nico Hulkenberg", Age: 36, Nationality: "Germany", Pace: 87, Consistency: 90, Marketability: 75, Experience: 92, Salary: 3_500_000, Cost: 9_000_000},
	// prospects
	{ID: "d14", Name: "Franco Colapinto", Age: 21, Nationality: "Argentina", Pace: 83, Consistency: 80, Marketability: 88, Experience: 15, Salary: 1_200_000, Cost: 4_000_000},
	{ID: "d20", Name: "Yuki Tsunoda", Age: 24, Nationality: "Japan", Pace: 84, Consistency: 78, Marketability: 85, Experience: 60, Salary: 2_500_000, Cost: 7_000_000},
	{ID: "d21", Name: "Liam Lawson", Age: 22, Nationality: "New Zealand", Pace: 83, Consistency: 85, Marketability: 80, Experience: 20, Salary: 1_500_000, Cost: 5_000_000},
	{ID: "d22", Name: "Oliver Bearman", Age: 19, Nationality: "United Kingdom", Pace: 82, Consistency: 75, Marketability: 88, Experience: 10, Salary: 1_000_000, Cost: 3_500_000},
	{ID: "d23", Name: "Kimi Antonelli", Age: 18, Nationality: "Italy", Pace: 85, Consistency: 72, Marketability: 90, Experience: 5, Salary: 1_200_000, Cost: 6_000_000},
	{ID: "d24", Name: "Gabriel Bortoleto", Age: 19, Nationality: "Brazil", Pace: 81, Consistency: 78, Marketability: 82, Experience: 8, Salary: 900_000, Cost: 3_000_000},
	{ID: "d10", Name: "Lance Stroll", Age: 25, Nationality: "Canada", Pace: 81, Consistency: 76, Marketability: 75, Experience: 75, Salary: 3_000_000, Cost: 9_000_000},
	{ID: "d25", Name: "Kevin Magnussen", Age: 31, Nationality: "Denmark", Pace: 82, Consistency: 80, Marketability: 78, Experience: 85, Salary: 2_800_000, Cost: 6_500_000},
	{ID: "d26", Name: "Zhou Guanyu", Age: 25, Nationality: "China", Pace: 80, Consistency: 84, Marketability: 88, Experience: 65, Salary: 2_000_000, Cost: 5_500_000},
}

var defaultEngineers = []model.Engineer{
	{ID: "e1", Name: "Adrian Newey", Specialty: "Aero", Rating: 99, Salary: 10_000_000, Cost: 20_000_000},
	{ID: "e2", Name: "James Allison", Specialty: "Aero", Rating: 92, Salary: 6_000_000, Cost: 12_000_000},
	{ID: "e3", Name: "Pierre Waché", Specialty: "Aero", Rating: 95, Salary: 7_500_000, Cost: 15_000_000},
	{ID: "e4", Name: "Hywel Thomas", Specialty: "Engine", Rating: 94, Salary: 7_000_000, Cost: 14_000_000},
	{ID: "e5", Name: "Enrico Cardile", Specialty: "Engine", Rating: 88, Salary: 4_000_000, Cost: 8_000_000},
	{ID: "e6", Name: "Dan Fallows", Specialty: "Reliability", Rating: 85, Salary: 3_000_000, Cost: 5_000_000},
	{ID: "e7", Name: "Andrea Stella", Specialty: "Aero", Rating: 89, Salary: 5_000_000, Cost: 9_000_000},
	{ID: "e8", Name: "Ayao Komatsu", Specialty: "Reliability", Rating: 82, Salary: 2_500_000, Cost: 4_000_000},
}

var defaultSponsors = []model.Sponsor{
	{ID: "s1", Name: "Velocity Energy", PayoutPerRace: 4_500_000, SigningBonus: 5_000_000, Category: "Energy Drink", TargetPosition: 3},
	{ID: "s2", Name: "Apex Logistics", PayoutPerRace: 2_800_000, SigningBonus: 8_000_000, Category: "Logistics", TargetPosition: 10},
	{ID: "s3", Name: "Zenith Watches", PayoutPerRace: 5_000_000, SigningBonus: 2_000_000, Category: "Luxury", TargetPosition: 1},
	{ID: "s4", Name: "CyberStream", PayoutPerRace: 3_200_000, SigningBonus: 4_000_000, Category: "Tech", TargetPosition: 5},
}
