//nolint:funlen // ok for tests
package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gtassert "gotest.tools/v3/assert"

	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/session"
)

func joinedPair(t *testing.T) (host, guest session.State) {
	t.Helper()
	host = hostState()
	lobby := FromState(&host, model.StatusLobby)
	guest, err := session.NewGuest("ABC123", lobby.Remote(), "Guest Team")
	gtassert.NilError(t, err)
	return host, guest
}

func TestApply_EchoAvoidance(t *testing.T) {
	host, _ := joinedPair(t)
	own := FromState(&host, model.StatusLobby)
	own.Teams[0].Funds = 1

	got, res := Apply(host, own)
	assert.False(t, res.Applied)
	assert.Equal(t, host, got)
}

func TestApply_LocalModes(t *testing.T) {
	solo := session.NewSolo(sampleTeam(0, "My Team"))
	host := hostState()
	snap := FromState(&host, model.StatusRacing)
	snap.LastAuthor = model.SideGuest
	got, res := Apply(solo, snap)
	assert.False(t, res.Applied)
	assert.Equal(t, solo, got)
}

func TestApply_RemoteWins(t *testing.T) {
	host, guest := joinedPair(t)

	// host edits without publishing
	host.Teams[0].Funds = 1

	ready := FromState(&guest, model.StatusReady)
	next, res := Apply(host, ready)
	assert.True(t, res.Applied)
	assert.False(t, res.EnteredRacing)
	assert.Equal(t, "Guest Team", next.Teams[1].Name)
	assert.Equal(t, int64(50_000_000), next.Teams[0].Funds, "remote write wins")
	assert.Equal(t, model.PhaseConfiguring, next.Phase)
	assert.Equal(t, uint64(1), next.Net.RemoteSeq)

	// the same publication is not applied twice
	next.Teams[0].Funds = 2
	again, res := Apply(next, ready)
	assert.False(t, res.Applied)
	assert.Equal(t, int64(2), again.Teams[0].Funds)
}

func TestApply_FullRound(t *testing.T) {
	host, guest := joinedPair(t)
	host, _ = Apply(host, FromState(&guest, model.StatusReady))

	host, out := session.EndTurn(host)
	gtassert.Assert(t, out.Publish)
	guest, res := Apply(guest, FromState(&host, out.Status))
	assert.True(t, res.Applied)
	assert.Equal(t, model.PhaseConfiguring, guest.Phase)
	assert.True(t, guest.IsMyTurn())

	guest, out = session.EndTurn(guest)
	assert.Equal(t, model.StatusRacing, out.Status)
	assert.Equal(t, model.PhaseRacing, guest.Phase)

	host, res = Apply(host, FromState(&guest, out.Status))
	assert.Equal(t, ApplyResult{Applied: true, EnteredRacing: true, RunRace: true}, res)
	assert.Equal(t, model.PhaseRacing, host.Phase)

	// an older host snapshot arriving late does not pull the guest back
	stale := FromState(&host, model.StatusWaitingGuest)
	stale.Seq = 2
	g2, res := Apply(guest, stale)
	assert.False(t, res.Applied)
	assert.Equal(t, model.PhaseRacing, g2.Phase)

	result := &model.RaceResult{RaceName: "Bahrain Grand Prix", TeamResults: []model.TeamResult{
		{TeamID: 0, Driver1Position: 1, Driver2Position: 2},
		{TeamID: 1, Driver1Position: 3, Driver2Position: 4},
	}}
	host, out = session.FinishRace(host, result, nil)
	gtassert.Assert(t, out.Publish)
	guest, res = Apply(guest, FromState(&host, out.Status))
	assert.True(t, res.Applied)
	assert.False(t, res.RunRace)
	assert.Equal(t, model.PhaseAwaitingRemoteTurn, guest.Phase)
	assert.Equal(t, 1, guest.Season.CurrentRaceIndex)
	assert.Equal(t, int64(50_000_000+5_400_000+2_000_000), guest.Teams[1].Funds)
}

func TestApply_GuestSeesRacing(t *testing.T) {
	_, guest := joinedPair(t)
	snap := &Snapshot{
		Teams:         guest.Teams,
		SeasonHistory: []model.RaceResult{},
		LastAuthor:    model.SideHost,
		Status:        model.StatusRacing,
		Seq:           5,
	}
	next, res := Apply(guest, snap)
	assert.Equal(t, ApplyResult{Applied: true, EnteredRacing: true, RunRace: false}, res)
	assert.Equal(t, model.PhaseRacing, next.Phase)
}

func TestApply_GuestRejoins(t *testing.T) {
	host, guest := joinedPair(t)
	host, _ = Apply(host, FromState(&guest, model.StatusReady))
	host, out := session.EndTurn(host)
	guest, _ = Apply(guest, FromState(&host, out.Status))
	guest, out = session.EndTurn(guest)
	host, _ = Apply(host, FromState(&guest, out.Status))
	host, out = session.FinishRace(host, &model.RaceResult{RaceName: "Bahrain Grand Prix"}, nil)
	gtassert.Assert(t, out.Publish)
	gtassert.Equal(t, uint64(2), host.Net.RemoteSeq)

	// a fresh guest session joins the same room, its ready snapshot is lost
	lobby := FromState(&host, out.Status)
	rejoined, err := session.NewGuest("ABC123", lobby.Remote(), "Guest Team")
	gtassert.NilError(t, err)
	host, out = session.EndTurn(host)
	rejoined, res := Apply(rejoined, FromState(&host, out.Status))
	gtassert.Assert(t, res.Applied)
	rejoined, out = session.EndTurn(rejoined)
	assert.Equal(t, model.StatusRacing, out.Status)

	racing := FromState(&rejoined, out.Status)
	assert.Equal(t, uint64(2), racing.Seq)
	host, res = Apply(host, racing)
	assert.Equal(t, ApplyResult{Applied: true, EnteredRacing: true, RunRace: true}, res)
	assert.Equal(t, model.PhaseRacing, host.Phase)
	assert.Equal(t, rejoined.Epoch(), host.Net.RemoteEpoch)

	_, res = Apply(host, racing)
	assert.False(t, res.Applied)
}
