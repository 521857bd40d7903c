// Package roster contains the operations a participant may apply to its own
// team between races. Every operation either applies completely or returns an
// error and leaves the team untouched.
package roster

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/pitwall-go/pkg/model"
)

const (
	MaxDrivers        = 4
	MaxActiveDrivers  = 2
	MaxEngineers      = 3
	MaxActiveSponsors = 3
)

var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAlreadyOnRoster     = errors.New("already on roster")
	ErrRosterFull          = errors.New("roster full")
	ErrStaffFull           = errors.New("engineering staff full")
	ErrUnknownDriver       = errors.New("driver not on roster")
	ErrUnknownEngineer     = errors.New("engineer not on staff")
	ErrActiveDriversFull   = errors.New("two drivers already active")
	ErrUnknownPart         = errors.New("unknown car part")
	ErrInvalidCost         = errors.New("invalid cost")
	ErrNoSuchOffer         = errors.New("sponsor offer not pending")
	ErrSponsorSlotsFull    = errors.New("all sponsor slots taken")
	ErrSponsorNotActive    = errors.New("sponsor not active")
	ErrEmptyName           = errors.New("team name must not be empty")
	ErrNotReadyToRace      = errors.New("team needs 2 active drivers and an engineer")
	ErrSponsorAlreadyTaken = errors.New("sponsor already active")
)

func hasDriver(t *model.Team, id string) bool {
	return lo.ContainsBy(t.Drivers, func(d model.Driver) bool { return d.ID == id })
}

func hasEngineer(t *model.Team, id string) bool {
	return lo.ContainsBy(t.Engineers, func(e model.Engineer) bool { return e.ID == id })
}

func CheckHireDriver(t *model.Team, d *model.Driver) error {
	switch {
	case hasDriver(t, d.ID):
		return ErrAlreadyOnRoster
	case len(t.Drivers) >= MaxDrivers:
		return ErrRosterFull
	case t.Funds < d.Cost:
		return ErrInsufficientFunds
	}
	return nil
}

// HireDriver buys the driver. The driver becomes active if there is a free
// race seat.
func HireDriver(t *model.Team, d *model.Driver) error {
	if err := CheckHireDriver(t, d); err != nil {
		return err
	}
	t.Funds -= d.Cost
	t.Drivers = append(t.Drivers, *d)
	if len(t.ActiveDriverIDs) < MaxActiveDrivers {
		t.ActiveDriverIDs = append(t.ActiveDriverIDs, d.ID)
	}
	return nil
}

func CheckSellDriver(t *model.Team, id string) error {
	if !hasDriver(t, id) {
		return ErrUnknownDriver
	}
	return nil
}

// SellDriver releases the driver for half of the purchase price
func SellDriver(t *model.Team, id string) error {
	if err := CheckSellDriver(t, id); err != nil {
		return err
	}
	d, _ := lo.Find(t.Drivers, func(d model.Driver) bool { return d.ID == id })
	t.Funds += d.Cost / 2
	t.Drivers = lo.Reject(t.Drivers, func(d model.Driver, _ int) bool { return d.ID == id })
	t.ActiveDriverIDs = lo.Without(t.ActiveDriverIDs, id)
	return nil
}

func CheckToggleActiveDriver(t *model.Team, id string) error {
	if !hasDriver(t, id) {
		return ErrUnknownDriver
	}
	if !lo.Contains(t.ActiveDriverIDs, id) && len(t.ActiveDriverIDs) >= MaxActiveDrivers {
		return ErrActiveDriversFull
	}
	return nil
}

func ToggleActiveDriver(t *model.Team, id string) error {
	if err := CheckToggleActiveDriver(t, id); err != nil {
		return err
	}
	if lo.Contains(t.ActiveDriverIDs, id) {
		t.ActiveDriverIDs = lo.Without(t.ActiveDriverIDs, id)
	} else {
		t.ActiveDriverIDs = append(t.ActiveDriverIDs, id)
	}
	return nil
}

func CheckHireEngineer(t *model.Team, e *model.Engineer) error {
	switch {
	case hasEngineer(t, e.ID):
		return ErrAlreadyOnRoster
	case len(t.Engineers) >= MaxEngineers:
		return ErrStaffFull
	case t.Funds < e.Cost:
		return ErrInsufficientFunds
	}
	return nil
}

func HireEngineer(t *model.Team, e *model.Engineer) error {
	if err := CheckHireEngineer(t, e); err != nil {
		return err
	}
	t.Funds -= e.Cost
	t.Engineers = append(t.Engineers, *e)
	return nil
}

func CheckFireEngineer(t *model.Team, id string) error {
	if !hasEngineer(t, id) {
		return ErrUnknownEngineer
	}
	return nil
}

// FireEngineer removes the engineer. There is no refund.
func FireEngineer(t *model.Team, id string) error {
	if err := CheckFireEngineer(t, id); err != nil {
		return err
	}
	t.Engineers = lo.Reject(t.Engineers, func(e model.Engineer, _ int) bool { return e.ID == id })
	return nil
}

func CheckUpgradeCar(t *model.Team, part model.CarPart, cost int64) error {
	if _, ok := t.Car.Level(part); !ok {
		return ErrUnknownPart
	}
	if cost < 0 {
		return ErrInvalidCost
	}
	if t.Funds < cost {
		return ErrInsufficientFunds
	}
	return nil
}

// UpgradeCar raises the level of the part by one
func UpgradeCar(t *model.Team, part model.CarPart, cost int64) error {
	if err := CheckUpgradeCar(t, part, cost); err != nil {
		return err
	}
	t.Funds -= cost
	switch part {
	case model.CarPartAerodynamics:
		t.Car.Aerodynamics++
	case model.CarPartPowerUnit:
		t.Car.PowerUnit++
	case model.CarPartChassis:
		t.Car.Chassis++
	}
	return nil
}

func CheckAcceptSponsor(t *model.Team, id string) error {
	if lo.Contains(t.ActiveSponsorIDs, id) {
		return ErrSponsorAlreadyTaken
	}
	if !lo.ContainsBy(t.SponsorOffers, func(s model.Sponsor) bool { return s.ID == id }) {
		return ErrNoSuchOffer
	}
	if len(t.ActiveSponsorIDs) >= MaxActiveSponsors {
		return ErrSponsorSlotsFull
	}
	return nil
}

// AcceptSponsor moves a pending offer into the active contracts
func AcceptSponsor(t *model.Team, id string) error {
	if err := CheckAcceptSponsor(t, id); err != nil {
		return err
	}
	t.ActiveSponsorIDs = append(t.ActiveSponsorIDs, id)
	t.SponsorOffers = lo.Reject(t.SponsorOffers, func(s model.Sponsor, _ int) bool { return s.ID == id })
	return nil
}

func CheckRejectSponsor(t *model.Team, id string) error {
	if !lo.ContainsBy(t.SponsorOffers, func(s model.Sponsor) bool { return s.ID == id }) {
		return ErrNoSuchOffer
	}
	return nil
}

func RejectSponsor(t *model.Team, id string) error {
	if err := CheckRejectSponsor(t, id); err != nil {
		return err
	}
	t.SponsorOffers = lo.Reject(t.SponsorOffers, func(s model.Sponsor, _ int) bool { return s.ID == id })
	return nil
}

func CheckCancelSponsor(t *model.Team, id string) error {
	if !lo.Contains(t.ActiveSponsorIDs, id) {
		return ErrSponsorNotActive
	}
	return nil
}

func CancelSponsor(t *model.Team, id string) error {
	if err := CheckCancelSponsor(t, id); err != nil {
		return err
	}
	t.ActiveSponsorIDs = lo.Without(t.ActiveSponsorIDs, id)
	return nil
}

func Rename(t *model.Team, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	t.Name = name
	return nil
}

// RefreshOffers adds every sponsor to the pending offers that is neither
// active nor already offered. Returns the number of new offers.
func RefreshOffers(t *model.Team, sponsors []model.Sponsor) int {
	added := 0
	for _, s := range sponsors {
		if lo.Contains(t.ActiveSponsorIDs, s.ID) {
			continue
		}
		if lo.ContainsBy(t.SponsorOffers, func(o model.Sponsor) bool { return o.ID == s.ID }) {
			continue
		}
		t.SponsorOffers = append(t.SponsorOffers, s)
		added++
	}
	return added
}

// CanRace reports whether the team fulfills the minimum race requirements
func CanRace(t *model.Team) error {
	if len(t.ActiveDrivers()) != MaxActiveDrivers || len(t.Engineers) == 0 {
		return ErrNotReadyToRace
	}
	return nil
}
