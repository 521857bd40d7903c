package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"golang.org/x/mod/semver"

	"github.com/mpapenbr/pitwall-go/pkg/model"
)

// snapshots of clients older than this are rejected
const MinCompatibleVersion = "v0.3.0"

var (
	ErrMalformedSnapshot    = errors.New("malformed snapshot")
	ErrIncompatibleVersion  = errors.New("incompatible client version")
	errUnexpectedTeamsCount = errors.New("networked rooms need exactly 2 teams")
)

type kind int

const (
	kindInt kind = iota
	kindString
	kindArray
	kindObject
)

type requiredField struct {
	path string
	kind kind
}

var (
	requiredFields = []requiredField{
		{"$.teams", kindArray},
		{"$.currentRaceIndex", kindInt},
		{"$.seasonHistory", kindArray},
		{"$.currentTeamIndex", kindInt},
		{"$.lastAuthor", kindString},
		{"$.status", kindString},
	}
	// fields every team needs
	requiredTeamFields = []requiredField{
		{"id", kindInt},
		{"name", kindString},
		{"funds", kindInt},
		{"reputation", kindInt},
		{"car", kindObject},
		{"drivers", kindArray},
		{"activeDriverIds", kindArray},
		{"engineers", kindArray},
		{"activeSponsorIds", kindArray},
	}
	badPositions = jp.MustParseString(
		"$.seasonHistory[*].teamResults[?(@.driver1Position < 1 || @.driver1Position > 20 || @.driver2Position < 1 || @.driver2Position > 20)]")
	teamsPath = jp.MustParseString("$.teams[*]")
)

func checkKind(v any, k kind) bool {
	switch k {
	case kindInt:
		_, ok := v.(int64)
		return ok
	case kindString:
		_, ok := v.(string)
		return ok
	case kindArray:
		_, ok := v.([]any)
		return ok
	case kindObject:
		_, ok := v.(map[string]any)
		return ok
	}
	return false
}

// Validate checks the shape of a raw snapshot before it is decoded.
// All returned errors wrap ErrMalformedSnapshot.
func Validate(data []byte) error {
	obj, err := oj.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	if _, ok := obj.(map[string]any); !ok {
		return fmt.Errorf("%w: not an object", ErrMalformedSnapshot)
	}
	for _, f := range requiredFields {
		x := jp.MustParseString(f.path)
		v := x.First(obj)
		if v == nil || !checkKind(v, f.kind) {
			return fmt.Errorf("%w: missing or invalid %s", ErrMalformedSnapshot, f.path)
		}
	}
	teams := teamsPath.Get(obj)
	if len(teams) != 2 {
		return fmt.Errorf("%w: %w", ErrMalformedSnapshot, errUnexpectedTeamsCount)
	}
	for i, t := range teams {
		m, ok := t.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: team %d is not an object", ErrMalformedSnapshot, i)
		}
		for _, f := range requiredTeamFields {
			v, ok := m[f.path]
			// empty lists may have been encoded as null
			if ok && v == nil && f.kind == kindArray {
				continue
			}
			if !ok || !checkKind(v, f.kind) {
				return fmt.Errorf("%w: team %d: missing or invalid %s",
					ErrMalformedSnapshot, i, f.path)
			}
		}
	}
	if !model.Side(jp.C("lastAuthor").First(obj).(string)).Valid() {
		return fmt.Errorf("%w: unknown author", ErrMalformedSnapshot)
	}
	if !model.Status(jp.C("status").First(obj).(string)).Valid() {
		return fmt.Errorf("%w: unknown status", ErrMalformedSnapshot)
	}
	idx := jp.C("currentTeamIndex").First(obj).(int64)
	if idx < 0 || idx > 1 {
		return fmt.Errorf("%w: team index %d", ErrMalformedSnapshot, idx)
	}
	raceIdx := jp.C("currentRaceIndex").First(obj).(int64)
	history := jp.C("seasonHistory").First(obj).([]any)
	if raceIdx != int64(len(history)) {
		return fmt.Errorf("%w: race index %d with %d results",
			ErrMalformedSnapshot, raceIdx, len(history))
	}
	if bad := badPositions.Get(obj); len(bad) > 0 {
		return fmt.Errorf("%w: positions out of range", ErrMalformedSnapshot)
	}
	if v, ok := jp.C("clientVersion").First(obj).(string); ok {
		if err := CheckClientVersion(v); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
		}
	}
	return nil
}

// CheckClientVersion accepts versions of the same major version that are
// not older than MinCompatibleVersion. An empty version is accepted.
func CheckClientVersion(v string) error {
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q", ErrIncompatibleVersion, v)
	}
	if semver.Major(v) != semver.Major(MinCompatibleVersion) ||
		semver.Compare(v, MinCompatibleVersion) < 0 {
		return fmt.Errorf("%w: %s", ErrIncompatibleVersion, v)
	}
	return nil
}
