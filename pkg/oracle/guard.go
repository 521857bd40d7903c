package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/model"
)

// positions used for teams without a classification entry
const (
	FallbackDriver1Position = 15
	FallbackDriver2Position = 18
	FallbackCommentary      = "Simulation error."
	FallbackAdvice          = "Push development."
)

var (
	FallbackEvents = []string{"Technical glitch"}

	ErrNoReport              = errors.New("oracle returned no report")
	ErrInvalidClassification = errors.New("invalid classification")
)

type (
	// RaceNamer resolves the name of a race by its season index
	RaceNamer interface {
		RaceName(raceIndex int) string
	}

	GuardedRace struct {
		oracle RaceOracle
		names  RaceNamer
		log    *log.Logger
		tracer trace.Tracer
	}
	GuardedAdvice struct {
		oracle AdviceOracle
		log    *log.Logger
	}
	GuardOption func(*guardConfig)

	guardConfig struct {
		log *log.Logger
	}
)

func WithLogger(l *log.Logger) GuardOption {
	return func(c *guardConfig) {
		c.log = l
	}
}

func newGuardConfig(name string, opts ...GuardOption) *guardConfig {
	ret := &guardConfig{log: log.Default().Named(name)}
	for _, o := range opts {
		o(ret)
	}
	return ret
}

func NewGuardedRace(o RaceOracle, names RaceNamer, opts ...GuardOption) *GuardedRace {
	cfg := newGuardConfig("oracle.race", opts...)
	return &GuardedRace{
		oracle: o,
		names:  names,
		log:    cfg.log,
		tracer: otel.Tracer("pitwall.oracle"),
	}
}

// SimulateRace always returns a result. Oracle errors and invalid
// classifications produce the fallback result.
func (g *GuardedRace) SimulateRace(
	ctx context.Context,
	teams []model.Team,
	raceIndex int,
) *model.RaceResult {
	ctx, span := g.tracer.Start(ctx, "oracle.SimulateRace",
		trace.WithAttributes(attribute.Int("race.index", raceIndex)))
	defer span.End()

	raceName := g.names.RaceName(raceIndex)
	report, err := g.oracle.SimulateRace(ctx, teams, raceIndex)
	if err == nil && report == nil {
		err = ErrNoReport
	}
	if err == nil {
		err = CheckClassification(report.Classification)
	}
	if err != nil {
		g.log.Warn("race simulation failed, using fallback",
			log.String("race", raceName), log.ErrorField(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Fallback(teams, raceName)
	}
	return Compose(teams, raceName, report)
}

// CheckClassification accepts an empty classification or one containing
// every grid position exactly once. A driver may appear only once per team.
func CheckClassification(entries []model.ClassificationEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) != model.GridSize {
		return fmt.Errorf("%w: %d entries", ErrInvalidClassification, len(entries))
	}
	positions := lo.Map(entries, func(e model.ClassificationEntry, _ int) int { return e.Position })
	if len(lo.Uniq(positions)) != model.GridSize {
		return fmt.Errorf("%w: duplicate positions", ErrInvalidClassification)
	}
	if lo.SomeBy(positions, func(p int) bool { return p < 1 || p > model.GridSize }) {
		return fmt.Errorf("%w: position out of range", ErrInvalidClassification)
	}
	if len(lo.UniqBy(entries, entryKey)) != len(entries) {
		return fmt.Errorf("%w: duplicate driver", ErrInvalidClassification)
	}
	return nil
}

type driverKey struct {
	team   string
	driver string
}

func entryKey(e model.ClassificationEntry) driverKey {
	return driverKey{team: e.TeamName, driver: e.DriverName}
}

// TeamLabels returns the names the teams appear with in a classification.
// Management teams sharing a name are told apart by their id.
func TeamLabels(teams []model.Team) []string {
	count := lo.CountValuesBy(teams, func(t model.Team) string { return t.Name })
	return lo.Map(teams, func(t model.Team, _ int) string {
		if count[t.Name] > 1 {
			return fmt.Sprintf("%s #%d", t.Name, t.ID+1)
		}
		return t.Name
	})
}

// Compose builds the race result from a valid report. Team results are
// looked up by team and driver name. A driver listed for another team is
// accepted if the name appears only once in the classification. Drivers
// missing from the classification get the fallback positions.
func Compose(teams []model.Team, raceName string, report *Report) *model.RaceResult {
	byKey := lo.SliceToMap(report.Classification,
		func(e model.ClassificationEntry) (driverKey, int) { return entryKey(e), e.Position })
	byName := lo.GroupBy(report.Classification,
		func(e model.ClassificationEntry) string { return e.DriverName })
	labels := TeamLabels(teams)
	position := func(i, slot, fallback int) int {
		t := &teams[i]
		if slot >= len(t.ActiveDriverIDs) {
			return fallback
		}
		d, ok := lo.Find(t.Drivers, func(d model.Driver) bool { return d.ID == t.ActiveDriverIDs[slot] })
		if !ok {
			return fallback
		}
		if pos, ok := byKey[driverKey{team: labels[i], driver: d.Name}]; ok {
			return pos
		}
		if found := byName[d.Name]; len(found) == 1 {
			return found[0].Position
		}
		return fallback
	}
	ret := &model.RaceResult{
		RaceName:   raceName,
		Commentary: report.Commentary,
		Events:     append([]string{}, report.Events...),
		FullClassification: lo.Map(report.Classification,
			func(e model.ClassificationEntry, _ int) model.ClassificationEntry {
				e.Points = model.PointsForPosition(e.Position)
				return e
			}),
	}
	for i := range teams {
		p1 := position(i, 0, FallbackDriver1Position)
		p2 := position(i, 1, FallbackDriver2Position)
		ret.TeamResults = append(ret.TeamResults, model.TeamResult{
			TeamID:          teams[i].ID,
			Driver1Position: p1,
			Driver2Position: p2,
			Points:          model.PointsForPosition(p1) + model.PointsForPosition(p2),
		})
	}
	return ret
}

// Fallback is the result used when the simulation fails
func Fallback(teams []model.Team, raceName string) *model.RaceResult {
	return &model.RaceResult{
		RaceName: raceName,
		TeamResults: lo.Map(teams, func(t model.Team, _ int) model.TeamResult {
			return model.TeamResult{
				TeamID:          t.ID,
				Driver1Position: FallbackDriver1Position,
				Driver2Position: FallbackDriver2Position,
			}
		}),
		Commentary:         FallbackCommentary,
		Events:             append([]string{}, FallbackEvents...),
		FullClassification: []model.ClassificationEntry{},
	}
}

func NewGuardedAdvice(o AdviceOracle, opts ...GuardOption) *GuardedAdvice {
	cfg := newGuardConfig("oracle.advice", opts...)
	return &GuardedAdvice{oracle: o, log: cfg.log}
}

// Advice never fails. Errors and empty answers produce FallbackAdvice.
func (g *GuardedAdvice) Advice(ctx context.Context, team *model.Team) string {
	text, err := g.oracle.Advice(ctx, team)
	if err != nil {
		g.log.Warn("advice failed", log.String("team", team.Name), log.ErrorField(err))
		return FallbackAdvice
	}
	if text == "" {
		return FallbackAdvice
	}
	return text
}
