package play

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mpapenbr/pitwall-go/pkg/game"
	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/render"
)

var (
	errUnknownCommand = errors.New("unknown command, try help")
	errMissingArg     = errors.New("missing argument")
)

type shell struct {
	c   *game.Client
	out io.Writer
	mu  sync.Mutex
}

func newShell(c *game.Client, out io.Writer) *shell {
	return &shell{c: c, out: out}
}

// watch prints what happened outside of the participant's commands
func (s *shell) watch(events <-chan game.Event) {
	for e := range events {
		switch e.Kind {
		case game.EventRemoteApplied:
			s.printf("\n[%s] update from the other team, phase %s\n",
				e.State.Net.RoomCode, e.State.Phase)
		case game.EventRaceFinished:
			s.mu.Lock()
			render.Race(s.out, e.Result)
			render.Payouts(s.out, e.State.Teams, e.Payouts)
			s.mu.Unlock()
		case game.EventSessionStarted, game.EventStateChanged, game.EventRaceStarted:
		}
	}
}

func (s *shell) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *shell) help() {
	s.printf(`commands:
  status | market | sponsors | standings | advice
  hire <driver> | sell <driver> | toggle <driver>
  hire-eng <engineer> | fire <engineer> | upgrade <aerodynamics|powerUnit|chassis>
  accept <sponsor> | reject <sponsor> | cancel <sponsor> | offers
  rename <name> | end
  new <solo|duel> | host | join <room> | reset
  help | quit
`)
}

func (s *shell) status() {
	st := s.c.State()
	team := st.Teams[st.MyTeamIndex()]
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s session, race %d/%d, phase %s\n",
		st.Mode, st.Season.CurrentRaceIndex+1, model.SeasonLength, st.Phase)
	if st.IsNetworked() {
		fmt.Fprintf(s.out, "room %s (%s), status %s\n",
			st.Net.RoomCode, st.Net.Side(), st.Net.Status)
	}
	if st.SeasonComplete() {
		fmt.Fprintln(s.out, "season complete")
	}
	render.Team(s.out, &team)
}

//nolint:cyclop,funlen // command dispatch
func (s *shell) exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]
	arg := func() (string, error) {
		if len(args) == 0 {
			return "", errMissingArg
		}
		return args[0], nil
	}
	withArg := func(fn func(context.Context, string) error) error {
		a, err := arg()
		if err != nil {
			return err
		}
		if err := fn(ctx, a); err != nil {
			return err
		}
		s.printf("ok\n")
		return nil
	}

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		s.help()
	case "status":
		s.status()
	case "market":
		st := s.c.State()
		s.mu.Lock()
		render.Market(s.out, s.c.Catalog(), &st.Teams[st.MyTeamIndex()])
		s.mu.Unlock()
	case "sponsors":
		st := s.c.State()
		s.mu.Lock()
		render.Sponsors(s.out, s.c.Catalog(), &st.Teams[st.MyTeamIndex()])
		s.mu.Unlock()
	case "standings":
		st := s.c.State()
		s.mu.Lock()
		render.Standings(s.out, &st.Season, st.Teams)
		s.mu.Unlock()
	case "advice":
		s.printf("%q\n", s.c.Advice(ctx))
	case "hire":
		return false, withArg(s.c.HireDriver)
	case "sell":
		return false, withArg(s.c.SellDriver)
	case "toggle":
		return false, withArg(s.c.ToggleActiveDriver)
	case "hire-eng":
		return false, withArg(s.c.HireEngineer)
	case "fire":
		return false, withArg(s.c.FireEngineer)
	case "accept":
		return false, withArg(s.c.AcceptSponsor)
	case "reject":
		return false, withArg(s.c.RejectSponsor)
	case "cancel":
		return false, withArg(s.c.CancelSponsor)
	case "upgrade":
		return false, withArg(func(ctx context.Context, a string) error {
			part, ok := model.ParseCarPart(a)
			if !ok {
				return fmt.Errorf("unknown part %q", a)
			}
			return s.c.UpgradeCar(ctx, part)
		})
	case "offers":
		n, err := s.c.RefreshOffers(ctx)
		if err != nil {
			return false, err
		}
		s.printf("%d new offers\n", n)
	case "rename":
		if len(args) == 0 {
			return false, errMissingArg
		}
		if err := s.c.RenameTeam(ctx, strings.Join(args, " ")); err != nil {
			return false, err
		}
		s.printf("ok\n")
	case "end":
		out, err := s.c.EndTurn(ctx)
		if err != nil {
			return false, err
		}
		if !out.Changed {
			s.printf("not your turn\n")
			return false, nil
		}
		s.status()
	case "new":
		a, err := arg()
		if err != nil {
			return false, err
		}
		switch a {
		case "solo":
			s.c.NewSolo(ctx)
		case "duel":
			s.c.NewDuel(ctx)
		default:
			return false, fmt.Errorf("unknown mode %q", a)
		}
		s.status()
	case "host":
		code, err := s.c.CreateRoom(ctx)
		if err != nil {
			return false, err
		}
		s.printf("room %s created, share the code with your opponent\n", code)
	case "join":
		if err := withArg(s.c.JoinRoom); err != nil {
			return false, err
		}
		s.status()
	case "reset":
		s.c.Reset(ctx)
		s.status()
	default:
		return false, errUnknownCommand
	}
	return false, nil
}
