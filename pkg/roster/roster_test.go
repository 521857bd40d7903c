//nolint:funlen,lll // ok for tests
package roster

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/pitwall-go/pkg/model"
)

func sampleTeam() model.Team {
	return model.Team{
		ID:         0,
		Name:       "Test Team",
		Funds:      50_000_000,
		Reputation: 10,
		Car:        model.CarLevels{Aerodynamics: 1, PowerUnit: 1, Chassis: 1},
		SponsorOffers: []model.Sponsor{
			{ID: "s1", PayoutPerRace: 4_500_000, TargetPosition: 3},
			{ID: "s2", PayoutPerRace: 2_800_000, TargetPosition: 10},
			{ID: "s3", PayoutPerRace: 5_000_000, TargetPosition: 1},
			{ID: "s4", PayoutPerRace: 3_200_000, TargetPosition: 5},
		},
	}
}

func driver(id string, cost int64) *model.Driver {
	return &model.Driver{ID: id, Name: "Driver " + id, Cost: cost}
}

func TestHireDriver(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(tm *model.Team)
		driver     *model.Driver
		wantErr    error
		wantFunds  int64
		wantActive []string
	}{
		{
			name:       "first driver is activated",
			driver:     driver("d1", 10_000_000),
			wantFunds:  40_000_000,
			wantActive: []string{"d1"},
		},
		{
			name: "third driver stays inactive",
			setup: func(tm *model.Team) {
				tm.Drivers = []model.Driver{*driver("a", 0), *driver("b", 0)}
				tm.ActiveDriverIDs = []string{"a", "b"}
			},
			driver:     driver("d1", 1_000_000),
			wantFunds:  49_000_000,
			wantActive: []string{"a", "b"},
		},
		{
			name:       "insufficient funds",
			driver:     driver("d-fangio", 60_000_000),
			wantErr:    ErrInsufficientFunds,
			wantFunds:  50_000_000,
			wantActive: nil,
		},
		{
			name:       "exact funds allowed",
			driver:     driver("d1", 50_000_000),
			wantFunds:  0,
			wantActive: []string{"d1"},
		},
		{
			name: "duplicate",
			setup: func(tm *model.Team) {
				tm.Drivers = []model.Driver{*driver("d1", 0)}
			},
			driver:    driver("d1", 1),
			wantErr:   ErrAlreadyOnRoster,
			wantFunds: 50_000_000,
		},
		{
			name: "roster full",
			setup: func(tm *model.Team) {
				tm.Drivers = []model.Driver{*driver("a", 0), *driver("b", 0), *driver("c", 0), *driver("d", 0)}
			},
			driver:    driver("d1", 1),
			wantErr:   ErrRosterFull,
			wantFunds: 50_000_000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := sampleTeam()
			if tt.setup != nil {
				tt.setup(&tm)
			}
			before := tm.Clone()
			err := HireDriver(&tm, tt.driver)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantFunds, tm.Funds)
			if tt.wantErr != nil {
				if diff := cmp.Diff(before, tm, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("team modified on rejection (-before +after):\n%s", diff)
				}
				return
			}
			assert.Equal(t, tt.wantActive, tm.ActiveDriverIDs)
		})
	}
}

func TestSellDriver(t *testing.T) {
	tm := sampleTeam()
	assert.NoError(t, HireDriver(&tm, driver("d1", 10_000_000)))
	assert.NoError(t, HireDriver(&tm, driver("d2", 3_000_001)))
	assert.Equal(t, int64(36_999_999), tm.Funds)

	assert.NoError(t, SellDriver(&tm, "d2"))
	// integer halving
	assert.Equal(t, int64(38_499_999), tm.Funds)
	assert.Equal(t, []string{"d1"}, tm.ActiveDriverIDs)
	assert.Len(t, tm.Drivers, 1)

	assert.ErrorIs(t, SellDriver(&tm, "d2"), ErrUnknownDriver)
	assert.Equal(t, int64(38_499_999), tm.Funds)
}

func TestToggleActiveDriver(t *testing.T) {
	tm := sampleTeam()
	for _, id := range []string{"a", "b", "c"} {
		assert.NoError(t, HireDriver(&tm, driver(id, 0)))
	}
	assert.Equal(t, []string{"a", "b"}, tm.ActiveDriverIDs)

	assert.ErrorIs(t, ToggleActiveDriver(&tm, "c"), ErrActiveDriversFull)
	assert.Equal(t, []string{"a", "b"}, tm.ActiveDriverIDs)

	assert.NoError(t, ToggleActiveDriver(&tm, "a"))
	assert.Equal(t, []string{"b"}, tm.ActiveDriverIDs)
	assert.NoError(t, ToggleActiveDriver(&tm, "c"))
	assert.Equal(t, []string{"b", "c"}, tm.ActiveDriverIDs)

	assert.ErrorIs(t, ToggleActiveDriver(&tm, "x"), ErrUnknownDriver)
}

func TestEngineers(t *testing.T) {
	tm := sampleTeam()
	e := func(id string, cost int64) *model.Engineer { return &model.Engineer{ID: id, Cost: cost} }

	assert.NoError(t, HireEngineer(&tm, e("e1", 20_000_000)))
	assert.Equal(t, int64(30_000_000), tm.Funds)
	assert.ErrorIs(t, HireEngineer(&tm, e("e1", 0)), ErrAlreadyOnRoster)
	assert.ErrorIs(t, HireEngineer(&tm, e("e2", 30_000_001)), ErrInsufficientFunds)
	assert.NoError(t, HireEngineer(&tm, e("e2", 0)))
	assert.NoError(t, HireEngineer(&tm, e("e3", 0)))
	assert.ErrorIs(t, HireEngineer(&tm, e("e4", 0)), ErrStaffFull)

	assert.NoError(t, FireEngineer(&tm, "e1"))
	assert.Equal(t, int64(30_000_000), tm.Funds, "no refund on firing")
	assert.Len(t, tm.Engineers, 2)
	assert.ErrorIs(t, FireEngineer(&tm, "e1"), ErrUnknownEngineer)
}

func TestUpgradeCar(t *testing.T) {
	tests := []struct {
		name      string
		part      model.CarPart
		cost      int64
		wantErr   error
		wantFunds int64
		wantCar   model.CarLevels
	}{
		{name: "aero", part: model.CarPartAerodynamics, cost: 5_000_000, wantFunds: 45_000_000, wantCar: model.CarLevels{Aerodynamics: 2, PowerUnit: 1, Chassis: 1}},
		{name: "power unit", part: model.CarPartPowerUnit, cost: 0, wantFunds: 50_000_000, wantCar: model.CarLevels{Aerodynamics: 1, PowerUnit: 2, Chassis: 1}},
		{name: "chassis", part: model.CarPartChassis, cost: 50_000_000, wantFunds: 0, wantCar: model.CarLevels{Aerodynamics: 1, PowerUnit: 1, Chassis: 2}},
		{name: "unknown part", part: model.CarPart("wings"), cost: 1, wantErr: ErrUnknownPart, wantFunds: 50_000_000, wantCar: model.CarLevels{Aerodynamics: 1, PowerUnit: 1, Chassis: 1}},
		{name: "negative cost", part: model.CarPartChassis, cost: -1, wantErr: ErrInvalidCost, wantFunds: 50_000_000, wantCar: model.CarLevels{Aerodynamics: 1, PowerUnit: 1, Chassis: 1}},
		{name: "too expensive", part: model.CarPartChassis, cost: 50_000_001, wantErr: ErrInsufficientFunds, wantFunds: 50_000_000, wantCar: model.CarLevels{Aerodynamics: 1, PowerUnit: 1, Chassis: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := sampleTeam()
			err := UpgradeCar(&tm, tt.part, tt.cost)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantFunds, tm.Funds)
			assert.Equal(t, tt.wantCar, tm.Car)
		})
	}
}

func TestSponsors(t *testing.T) {
	tm := sampleTeam()
	assert.NoError(t, AcceptSponsor(&tm, "s1"))
	assert.NoError(t, AcceptSponsor(&tm, "s2"))
	assert.ErrorIs(t, AcceptSponsor(&tm, "s1"), ErrSponsorAlreadyTaken)
	assert.ErrorIs(t, AcceptSponsor(&tm, "unknown"), ErrNoSuchOffer)
	assert.NoError(t, AcceptSponsor(&tm, "s3"))
	assert.Equal(t, []string{"s1", "s2", "s3"}, tm.ActiveSponsorIDs)

	// fourth offer is still pending but all slots are taken
	assert.ErrorIs(t, AcceptSponsor(&tm, "s4"), ErrSponsorSlotsFull)
	assert.Len(t, tm.SponsorOffers, 1)

	assert.NoError(t, RejectSponsor(&tm, "s4"))
	assert.Empty(t, tm.SponsorOffers)
	assert.ErrorIs(t, RejectSponsor(&tm, "s4"), ErrNoSuchOffer)

	assert.NoError(t, CancelSponsor(&tm, "s2"))
	assert.Equal(t, []string{"s1", "s3"}, tm.ActiveSponsorIDs)
	assert.ErrorIs(t, CancelSponsor(&tm, "s2"), ErrSponsorNotActive)
	assert.Equal(t, int64(50_000_000), tm.Funds, "sponsors never change funds outside settlement")
}

func TestRefreshOffers(t *testing.T) {
	tm := sampleTeam()
	all := append([]model.Sponsor{}, tm.SponsorOffers...)
	assert.NoError(t, AcceptSponsor(&tm, "s1"))
	assert.NoError(t, RejectSponsor(&tm, "s2"))

	added := RefreshOffers(&tm, all)
	assert.Equal(t, 1, added)
	ids := make([]string, 0, len(tm.SponsorOffers))
	for _, s := range tm.SponsorOffers {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{"s2", "s3", "s4"}, ids)
	assert.Equal(t, 0, RefreshOffers(&tm, all))
}

func TestRename(t *testing.T) {
	tm := sampleTeam()
	assert.NoError(t, Rename(&tm, "  Guest Team "))
	assert.Equal(t, "Guest Team", tm.Name)
	assert.ErrorIs(t, Rename(&tm, "   "), ErrEmptyName)
	assert.Equal(t, "Guest Team", tm.Name)
}

func TestCanRace(t *testing.T) {
	tm := sampleTeam()
	assert.ErrorIs(t, CanRace(&tm), ErrNotReadyToRace)
	assert.NoError(t, HireDriver(&tm, driver("a", 0)))
	assert.NoError(t, HireDriver(&tm, driver("b", 0)))
	assert.ErrorIs(t, CanRace(&tm), ErrNotReadyToRace)
	assert.NoError(t, HireEngineer(&tm, &model.Engineer{ID: "e1"}))
	assert.NoError(t, CanRace(&tm))
}
