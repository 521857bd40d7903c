// Package oracle produces race results and engineer advice.
// The raw oracles may fail or return garbage; the guarded wrappers turn
// every outcome into a usable value.
package oracle

import (
	"context"

	"github.com/mpapenbr/pitwall-go/pkg/model"
)

type (
	// Report is the raw outcome of a race simulation
	Report struct {
		Classification []model.ClassificationEntry
		Commentary     string
		Events         []string
	}

	RaceOracle interface {
		SimulateRace(ctx context.Context, teams []model.Team, raceIndex int) (*Report, error)
	}

	AdviceOracle interface {
		Advice(ctx context.Context, team *model.Team) (string, error)
	}

	// RaceOracleFunc adapts a function to RaceOracle
	RaceOracleFunc func(ctx context.Context, teams []model.Team, raceIndex int) (*Report, error)
	// AdviceOracleFunc adapts a function to AdviceOracle
	AdviceOracleFunc func(ctx context.Context, team *model.Team) (string, error)
)

func (f RaceOracleFunc) SimulateRace(
	ctx context.Context,
	teams []model.Team,
	raceIndex int,
) (*Report, error) {
	return f(ctx, teams, raceIndex)
}

func (f AdviceOracleFunc) Advice(ctx context.Context, team *model.Team) (string, error) {
	return f(ctx, team)
}
