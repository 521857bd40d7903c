package model

const (
	GridSize     = 20
	SeasonLength = 10
)

type TeamResult struct {
	TeamID          int `json:"teamId"`
	Driver1Position int `json:"driver1Position"`
	Driver2Position int `json:"driver2Position"`
	Points          int `json:"points"`
}

type ClassificationEntry struct {
	DriverName string `json:"driverName"`
	TeamName   string `json:"teamName"`
	Position   int    `json:"position"`
	Points     int    `json:"points"`
}

// RaceResult is produced once per race by the race oracle and never edited
type RaceResult struct {
	RaceName           string                `json:"raceName"`
	TeamResults        []TeamResult          `json:"teamResults"`
	Commentary         string                `json:"commentary"`
	Events             []string              `json:"events"`
	FullClassification []ClassificationEntry `json:"fullClassification"`
}

// TeamResult returns the entry for the given team
func (r *RaceResult) TeamResult(teamID int) (TeamResult, bool) {
	for _, tr := range r.TeamResults {
		if tr.TeamID == teamID {
			return tr, true
		}
	}
	return TeamResult{}, false
}

// BestPosition is the better of both driver positions
func (tr TeamResult) BestPosition() int {
	return min(tr.Driver1Position, tr.Driver2Position)
}

var pointsTable = []int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// PointsForPosition returns the championship points for a finishing position
func PointsForPosition(pos int) int {
	if pos >= 1 && pos <= len(pointsTable) {
		return pointsTable[pos-1]
	}
	return 0
}
