// Package reconcile exchanges the shared part of a networked session over a
// key/value channel and merges remote changes into the local session.
package reconcile

import (
	"time"

	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/session"
	"github.com/mpapenbr/pitwall-go/version"
)

// Snapshot is the payload stored under the room key
type Snapshot struct {
	Teams            []model.Team       `json:"teams"`
	CurrentRaceIndex int                `json:"currentRaceIndex"`
	SeasonHistory    []model.RaceResult `json:"seasonHistory"`
	CurrentTeamIndex int                `json:"currentTeamIndex"`
	LastAuthor       model.Side         `json:"lastAuthor"`
	Status           model.Status       `json:"status"`
	Seq              uint64             `json:"seq,omitempty"`
	// session id of the publisher, changes when a participant rejoins
	Epoch         string    `json:"epoch,omitempty"`
	ClientVersion string    `json:"clientVersion"`
	PublishedAt   time.Time `json:"publishedAt"`
}

// FromState creates the snapshot a participant publishes. Author and seq are
// taken from the networked data of the session.
func FromState(s *session.State, status model.Status) *Snapshot {
	ret := &Snapshot{
		Teams:            model.CloneTeams(s.Teams),
		CurrentRaceIndex: s.Season.CurrentRaceIndex,
		SeasonHistory:    append([]model.RaceResult{}, s.Season.History...),
		CurrentTeamIndex: s.CurrentTeamIndex,
		Status:           status,
		ClientVersion:    version.Version,
		PublishedAt:      time.Now().UTC(),
	}
	if s.Net != nil {
		ret.LastAuthor = s.Net.Side()
		ret.Seq = s.Net.Seq
		ret.Epoch = s.Epoch()
	}
	return ret
}

// Remote converts the snapshot for session.AdoptRemote
func (s *Snapshot) Remote() *session.Remote {
	return &session.Remote{
		Teams:            s.Teams,
		RaceIndex:        s.CurrentRaceIndex,
		History:          s.SeasonHistory,
		CurrentTeamIndex: s.CurrentTeamIndex,
		Status:           s.Status,
		Author:           s.LastAuthor,
		Seq:              s.Seq,
		Epoch:            s.Epoch,
	}
}
