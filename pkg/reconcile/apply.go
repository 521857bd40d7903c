package reconcile

import (
	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/session"
)

// ApplyResult tells the caller what Apply did
type ApplyResult struct {
	Applied bool
	// the session entered the racing phase because of the remote status
	EnteredRacing bool
	// the local participant has to run the race (host only)
	RunRace bool
}

// Apply merges a remote snapshot into the local session.
// Local sessions are never changed. Snapshots published by the local side
// and snapshots already applied are ignored. A snapshot of a rejoined remote
// participant (new epoch) is applied regardless of its sequence number. Otherwise the remote data
// replaces the shared state, including unpublished local edits.
func Apply(local session.State, remote *Snapshot) (session.State, ApplyResult) {
	if !local.IsNetworked() || remote == nil {
		return local, ApplyResult{}
	}
	if remote.LastAuthor == local.Net.Side() {
		return local, ApplyResult{}
	}
	r := remote.Remote()
	if !r.IsNewer(local.Net) {
		return local, ApplyResult{}
	}
	next := session.AdoptRemote(local, r)
	res := ApplyResult{Applied: true}
	if local.Phase != model.PhaseRacing && next.Phase == model.PhaseRacing {
		res.EnteredRacing = true
		res.RunRace = next.Net.IsHost
	}
	return next, res
}
