package model

type CarPart string

const (
	CarPartAerodynamics CarPart = "aerodynamics"
	CarPartPowerUnit    CarPart = "powerUnit"
	CarPartChassis      CarPart = "chassis"
)

var CarParts = []CarPart{CarPartAerodynamics, CarPartPowerUnit, CarPartChassis}

// levels start at 1 and have no upper bound
type CarLevels struct {
	Aerodynamics int `json:"aerodynamics"`
	PowerUnit    int `json:"powerUnit"`
	Chassis      int `json:"chassis"`
}

// Level returns the level of the given part and false for unknown parts
func (c CarLevels) Level(part CarPart) (int, bool) {
	switch part {
	case CarPartAerodynamics:
		return c.Aerodynamics, true
	case CarPartPowerUnit:
		return c.PowerUnit, true
	case CarPartChassis:
		return c.Chassis, true
	}
	return 0, false
}

func (c CarLevels) Total() int {
	return c.Aerodynamics + c.PowerUnit + c.Chassis
}

func ParseCarPart(s string) (CarPart, bool) {
	switch s {
	case "aero", "aerodynamics":
		return CarPartAerodynamics, true
	case "engine", "power", "powerUnit", "powerunit":
		return CarPartPowerUnit, true
	case "chassis":
		return CarPartChassis, true
	}
	return "", false
}
