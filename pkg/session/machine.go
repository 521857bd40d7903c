package session

import (
	"github.com/mpapenbr/pitwall-go/pkg/economy"
	"github.com/mpapenbr/pitwall-go/pkg/model"
)

// Outcome describes the effects of a transition the caller has to carry out
type Outcome struct {
	// false if the transition was ignored
	Changed bool
	// networked sessions have to publish the new state with this status
	Publish bool
	Status  model.Status
	// the session entered the racing phase and the local participant is
	// responsible for running the race
	RunRace bool
	Payouts []economy.Payout
}

// EndTurn passes the turn on. Ignored if it is not the local participant's
// turn, the session is not configuring or the season is complete.
func EndTurn(s State) (State, Outcome) {
	if !s.IsMyTurn() || s.Phase != model.PhaseConfiguring || s.SeasonComplete() {
		return s, Outcome{}
	}
	ret := s.Clone()
	out := Outcome{Changed: true}
	switch ret.Mode {
	case model.ModeNetworked:
		ret.CurrentTeamIndex = (ret.CurrentTeamIndex + 1) % 2
		if ret.CurrentTeamIndex == 0 {
			ret.Phase = model.PhaseRacing
			ret.Net.Status = model.StatusRacing
			// only the host produces race results
			out.RunRace = ret.Net.IsHost
		} else {
			ret.Phase = model.PhaseAwaitingRemoteTurn
			ret.Net.Status = model.StatusWaitingGuest
		}
		ret.Net.LastAuthor = ret.Net.Side()
		ret.Net.Seq++
		out.Publish = true
		out.Status = ret.Net.Status
	case model.ModeDuel:
		ret.CurrentTeamIndex = (ret.CurrentTeamIndex + 1) % len(ret.Teams)
		if ret.CurrentTeamIndex == 0 {
			ret.Phase = model.PhaseRacing
			out.RunRace = true
		} else {
			ret.Phase = model.PhaseConfiguring
		}
	default:
		ret.Phase = model.PhaseRacing
		out.RunRace = true
	}
	return ret, out
}

// EnterRacing switches into the racing phase after the remote participant
// started the race. The host is asked to run it.
func EnterRacing(s State) (State, Outcome) {
	if s.Phase == model.PhaseRacing || s.SeasonComplete() {
		return s, Outcome{}
	}
	ret := s.Clone()
	ret.Phase = model.PhaseRacing
	out := Outcome{Changed: true}
	if ret.Net != nil {
		ret.Net.Status = model.StatusRacing
		out.RunRace = ret.Net.IsHost
	}
	return ret, out
}

// FinishRace settles the race result and starts the next configuration
// round. Ignored outside the racing phase and, in networked sessions, on the
// guest.
func FinishRace(s State, result *model.RaceResult, sponsors economy.SponsorLookup) (State, Outcome) {
	if s.Phase != model.PhaseRacing {
		return s, Outcome{}
	}
	if s.Net != nil && !s.Net.IsHost {
		return s, Outcome{}
	}
	ret := s.Clone()
	if err := ret.Season.Append(result); err != nil {
		return s, Outcome{}
	}
	teams, payouts := economy.Settle(ret.Teams, result, sponsors)
	ret.Teams = teams
	ret.CurrentTeamIndex = 0
	ret.Phase = model.PhaseConfiguring
	out := Outcome{Changed: true, Payouts: payouts}
	if ret.Net != nil {
		ret.Net.Status = model.StatusLobby
		ret.Net.LastAuthor = model.SideHost
		ret.Net.Seq++
		out.Publish = true
		out.Status = model.StatusLobby
	}
	return ret, out
}

// Remote is the shared part of a session as published by a participant
type Remote struct {
	Teams            []model.Team
	RaceIndex        int
	History          []model.RaceResult
	CurrentTeamIndex int
	Status           model.Status
	Author           model.Side
	Seq              uint64
	Epoch            string
}

// IsNewer reports if r has to be applied to a session that already applied
// publications of the remote side up to n.RemoteSeq. Publications of a new
// epoch are always newer, publications without a sequence number are never
// rejected.
func (r *Remote) IsNewer(n *Networked) bool {
	if r.Epoch != "" && r.Epoch != n.RemoteEpoch {
		return true
	}
	return r.Seq == 0 || r.Seq > n.RemoteSeq
}

// AdoptRemote replaces the shared parts of the session with the data
// published by the remote participant and derives the local phase.
func AdoptRemote(s State, r *Remote) State {
	ret := s.Clone()
	ret.Teams = model.CloneTeams(r.Teams)
	ret.Season.CurrentRaceIndex = r.RaceIndex
	ret.Season.History = append([]model.RaceResult{}, r.History...)
	ret.CurrentTeamIndex = r.CurrentTeamIndex
	if ret.Net != nil {
		ret.Net.LastAuthor = r.Author
		ret.Net.Status = r.Status
		if r.Epoch != "" && r.Epoch != ret.Net.RemoteEpoch {
			ret.Net.RemoteEpoch = r.Epoch
			ret.Net.RemoteSeq = r.Seq
		} else {
			ret.Net.RemoteSeq = max(ret.Net.RemoteSeq, r.Seq)
		}
	}
	if r.Status == model.StatusRacing && !ret.SeasonComplete() {
		ret.Phase = model.PhaseRacing
		return ret
	}
	ret.Phase = ret.phaseByTurn()
	return ret
}
