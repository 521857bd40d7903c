package game

import (
	"github.com/mpapenbr/pitwall-go/pkg/economy"
	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/session"
)

type EventKind string

const (
	// the session was replaced (new game, room created or joined, reset)
	EventSessionStarted EventKind = "session-started"
	// a roster or turn change of the local participant
	EventStateChanged EventKind = "state-changed"
	// a snapshot of the remote participant was applied
	EventRemoteApplied EventKind = "remote-applied"
	EventRaceStarted   EventKind = "race-started"
	EventRaceFinished  EventKind = "race-finished"
)

// Event is sent to subscribers after the client committed a change
type Event struct {
	Kind  EventKind
	State session.State
	// only set on EventRaceFinished
	Result  *model.RaceResult
	Payouts []economy.Payout
}
