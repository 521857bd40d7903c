// Package game drives one game session: it applies the participant's
// actions, runs races, saves the session and keeps networked sessions in
// sync with the remote participant.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/catalog"
	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/oracle"
	"github.com/mpapenbr/pitwall-go/pkg/reconcile"
	"github.com/mpapenbr/pitwall-go/pkg/roster"
	"github.com/mpapenbr/pitwall-go/pkg/session"
	"github.com/mpapenbr/pitwall-go/pkg/store"
	"github.com/mpapenbr/pitwall-go/pkg/utils/broadcast"
)

const (
	SoloTeamName    = "My Team"
	DuelFirstName   = "Player 1"
	DuelSecondName  = "Player 2"
	HostTeamName    = "Host Team"
	PlaceholderName = "Waiting..."
	GuestTeamName   = "Guest Team"

	firstColor  = "red"
	secondColor = "cyan"
)

var (
	ErrNoTransport = errors.New("networked play needs a channel")
	ErrNotInMarket = errors.New("not available in the market")
	ErrClosed      = errors.New("client closed")
)

// Client owns the session. All operations are serialized, the poller is the
// only background goroutine.
type Client struct {
	mu       sync.Mutex
	cfg      *clientConfig
	state    session.State
	race     *oracle.GuardedRace
	advice   *oracle.GuardedAdvice
	poller   *reconcile.Poller
	gen      uint64
	stopPoll context.CancelFunc
	wg       sync.WaitGroup
	events   chan Event
	bcast    broadcast.Server[Event]
	closed   bool
	log      *log.Logger
	tracer   trace.Tracer
}

// New restores the saved session or starts a fresh solo session.
// A saved networked session resumes polling its room.
func New(ctx context.Context, opts ...Option) *Client {
	cfg := newConfig(opts...)
	c := &Client{
		cfg:    cfg,
		race:   oracle.NewGuardedRace(cfg.race, cfg.catalog, oracle.WithLogger(cfg.log.Named("race"))),
		advice: oracle.NewGuardedAdvice(cfg.advice, oracle.WithLogger(cfg.log.Named("advice"))),
		events: make(chan Event, 64),
		log:    cfg.log,
		tracer: otel.Tracer("pitwall.game"),
	}
	c.bcast = broadcast.NewServer("game.event", "game", c.events,
		broadcast.WithBuffer[Event](16),
		broadcast.WithLogger[Event](c.log.Named("events")))
	if cfg.transport != nil {
		c.poller = reconcile.NewPoller(cfg.transport,
			reconcile.WithInterval(cfg.pollInterval),
			reconcile.WithPollerLogger(c.log.Named("poller")))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = store.LoadOrNew(ctx, cfg.store, cfg.slot, c.freshSolo)
	c.log.Info("session loaded",
		log.String("id", c.state.ID.String()),
		log.String("mode", string(c.state.Mode)),
		log.Int("race", c.state.Season.CurrentRaceIndex))
	if c.state.IsNetworked() {
		if c.poller != nil {
			c.startPolling(c.state.Net.RoomCode)
		} else {
			c.log.Warn("networked session without channel, not polling",
				log.String("room", c.state.Net.RoomCode))
		}
	}
	if c.state.Phase == model.PhaseRacing && c.settlesRaces() {
		c.log.Info("resuming interrupted race")
		c.runRace(ctx)
	}
	return c
}

func (c *Client) freshSolo() session.State {
	return session.NewSolo(c.cfg.catalog.NewTeam(0, SoloTeamName, firstColor))
}

// settlesRaces reports whether this client produces race results
func (c *Client) settlesRaces() bool {
	return !c.state.IsNetworked() || c.state.Net.IsHost
}

// State returns a copy of the current session
func (c *Client) State() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Client) Catalog() *catalog.Catalog {
	return c.cfg.catalog
}

// Subscribe returns a channel receiving the events of all later changes
func (c *Client) Subscribe() <-chan Event {
	return c.bcast.Subscribe()
}

func (c *Client) Unsubscribe(ch <-chan Event) {
	c.bcast.CancelSubscription(ch)
}

// Close stops polling and closes all subscriptions.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopPolling()
	c.mu.Unlock()
	c.wg.Wait()
	close(c.events)
}

// NewSolo replaces the session with a fresh solo session
func (c *Client) NewSolo(ctx context.Context) session.State {
	return c.startSession(ctx, c.freshSolo())
}

// NewDuel replaces the session with a fresh local duel
func (c *Client) NewDuel(ctx context.Context) session.State {
	return c.startSession(ctx, session.NewDuel(
		c.cfg.catalog.NewTeam(0, DuelFirstName, firstColor),
		c.cfg.catalog.NewTeam(1, DuelSecondName, secondColor)))
}

// Reset leaves the current session, including a networked room, and starts
// over with a fresh solo session.
func (c *Client) Reset(ctx context.Context) session.State {
	return c.NewSolo(ctx)
}

func (c *Client) startSession(ctx context.Context, s session.State) session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPolling()
	c.commit(ctx, s, EventSessionStarted)
	c.log.Info("new session", log.String("id", s.ID.String()), log.String("mode", string(s.Mode)))
	return s.Clone()
}

// CreateRoom starts a networked session as host. The room is announced
// before the session is committed locally.
func (c *Client) CreateRoom(ctx context.Context) (string, error) {
	if c.cfg.transport == nil {
		return "", ErrNoTransport
	}
	ctx, span := c.tracer.Start(ctx, "game.CreateRoom")
	defer span.End()

	code, err := reconcile.NewRoomCode()
	if err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	span.SetAttributes(attribute.String("room", code))
	s := session.NewHostRoom(code,
		c.cfg.catalog.NewTeam(0, HostTeamName, firstColor),
		c.cfg.catalog.NewTeam(1, PlaceholderName, secondColor))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPolling()
	if err := c.cfg.transport.Publish(ctx, code, reconcile.FromState(&s, model.StatusLobby)); err != nil {
		c.log.Warn("could not announce room", log.String("room", code), log.ErrorField(err))
	}
	c.commit(ctx, s, EventSessionStarted)
	c.startPolling(code)
	c.log.Info("room created", log.String("room", code))
	return code, nil
}

// JoinRoom joins the room as guest. ErrRoomNotFound is returned if there is
// no usable snapshot for the room, the current session is kept in that case.
func (c *Client) JoinRoom(ctx context.Context, room string) error {
	if c.cfg.transport == nil {
		return ErrNoTransport
	}
	ctx, span := c.tracer.Start(ctx, "game.JoinRoom")
	defer span.End()

	code, err := reconcile.NormalizeRoomCode(room)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("room", code))
	snap, err := c.cfg.transport.Fetch(ctx, code)
	if err != nil {
		if !errors.Is(err, reconcile.ErrRoomNotFound) {
			c.log.Warn("could not fetch room", log.String("room", code), log.ErrorField(err))
		}
		return reconcile.ErrRoomNotFound
	}
	s, err := session.NewGuest(code, snap.Remote(), GuestTeamName)
	if err != nil {
		c.log.Warn("unusable room snapshot", log.String("room", code), log.ErrorField(err))
		return reconcile.ErrRoomNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPolling()
	if err := c.cfg.transport.Publish(ctx, code, reconcile.FromState(&s, model.StatusReady)); err != nil {
		c.log.Warn("could not announce guest", log.String("room", code), log.ErrorField(err))
	}
	c.commit(ctx, s, EventSessionStarted)
	c.startPolling(code)
	c.log.Info("room joined", log.String("room", code))
	return nil
}

// EndTurn passes the turn on. A team needs two active drivers and an
// engineer to do so. If the turn wraps the race is run before EndTurn
// returns, unless the remote host is responsible for it.
func (c *Client) EndTurn(ctx context.Context) (session.Outcome, error) {
	ctx, span := c.tracer.Start(ctx, "game.EndTurn")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return session.Outcome{}, ErrClosed
	}
	if c.state.IsMyTurn() && c.state.Phase == model.PhaseConfiguring {
		team := c.state.Teams[c.state.MyTeamIndex()]
		if err := roster.CanRace(&team); err != nil {
			return session.Outcome{}, err
		}
	}
	next, out := session.EndTurn(c.state)
	if !out.Changed {
		c.log.Debug("end turn ignored", log.String("phase", string(c.state.Phase)))
		return out, nil
	}
	c.commit(ctx, next, EventStateChanged)
	if out.Publish {
		c.publish(ctx, out.Status)
	}
	if next.Phase == model.PhaseRacing {
		c.emit(EventRaceStarted)
	}
	if out.RunRace {
		c.runRace(ctx)
	}
	return out, nil
}

// Advice asks the advice oracle about the local participant's team.
func (c *Client) Advice(ctx context.Context) string {
	ctx, span := c.tracer.Start(ctx, "game.Advice")
	defer span.End()
	c.mu.Lock()
	team := c.state.Teams[c.state.MyTeamIndex()].Clone()
	c.mu.Unlock()
	return c.advice.Advice(ctx, &team)
}

// runRace asks the race oracle for the result of the current race and
// settles it. The caller holds mu.
func (c *Client) runRace(ctx context.Context) {
	s := c.state
	result := c.race.SimulateRace(ctx, s.Teams, s.Season.CurrentRaceIndex)
	next, out := session.FinishRace(s, result, c.cfg.catalog)
	if !out.Changed {
		c.log.Warn("race result not settled", log.String("race", result.RaceName))
		return
	}
	c.state = next
	c.save(ctx)
	if out.Publish {
		c.publish(ctx, out.Status)
	}
	c.log.Info("race settled",
		log.String("race", result.RaceName),
		log.Int("raceIndex", next.Season.CurrentRaceIndex))
	c.send(Event{
		Kind:    EventRaceFinished,
		State:   next.Clone(),
		Result:  result,
		Payouts: out.Payouts,
	})
}

// commit replaces the session, saves it and notifies subscribers.
// The caller holds mu.
func (c *Client) commit(ctx context.Context, s session.State, kind EventKind) {
	c.state = s
	c.save(ctx)
	c.emit(kind)
}

func (c *Client) save(ctx context.Context) {
	if err := c.cfg.store.Save(ctx, c.cfg.slot, &c.state); err != nil {
		c.log.Warn("could not save session", log.String("slot", c.cfg.slot), log.ErrorField(err))
	}
}

// publish is fire and forget, failures are only logged
func (c *Client) publish(ctx context.Context, status model.Status) {
	if c.cfg.transport == nil || !c.state.IsNetworked() {
		return
	}
	room := c.state.Net.RoomCode
	if err := c.cfg.transport.Publish(ctx, room, reconcile.FromState(&c.state, status)); err != nil {
		c.log.Warn("could not publish snapshot",
			log.String("room", room),
			log.String("status", string(status)),
			log.ErrorField(err))
	}
}

func (c *Client) emit(kind EventKind) {
	c.send(Event{Kind: kind, State: c.state.Clone()})
}

func (c *Client) send(e Event) {
	if c.closed {
		return
	}
	select {
	case c.events <- e:
	default:
		c.log.Debug("event queue full, dropping event", log.String("kind", string(e.Kind)))
	}
}

// startPolling starts a new poller run for the room. The caller holds mu.
func (c *Client) startPolling(room string) {
	c.stopPolling()
	if c.poller == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.stopPoll = cancel
	gen := c.gen
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.poller.Run(ctx, room, gen, c.onPoll)
	}()
}

// stopPolling cancels the current poller run. Results still in flight are
// dropped by onPoll because the generation changed. The caller holds mu.
func (c *Client) stopPolling() {
	c.gen++
	if c.stopPoll != nil {
		c.stopPoll()
		c.stopPoll = nil
	}
}

func (c *Client) onPoll(res reconcile.PollResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || res.Generation != c.gen ||
		!c.state.IsNetworked() || c.state.Net.RoomCode != res.Room {
		c.log.Debug("dropping stale poll result",
			log.String("room", res.Room), log.Uint64("generation", res.Generation))
		return
	}
	next, ar := reconcile.Apply(c.state, res.Snapshot)
	if !ar.Applied {
		return
	}
	ctx := context.Background()
	c.log.Debug("applied remote snapshot",
		log.String("room", res.Room),
		log.String("status", string(res.Snapshot.Status)),
		log.Uint64("seq", res.Snapshot.Seq))
	c.commit(ctx, next, EventRemoteApplied)
	if ar.EnteredRacing {
		c.emit(EventRaceStarted)
	}
	if ar.RunRace {
		c.runRace(ctx)
	}
}
