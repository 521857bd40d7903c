package standings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/pitwall-go/pkg/cmd/util"
	"github.com/mpapenbr/pitwall-go/pkg/config"
	"github.com/mpapenbr/pitwall-go/pkg/render"
	"github.com/mpapenbr/pitwall-go/pkg/session"
	"github.com/mpapenbr/pitwall-go/pkg/store"
	pgstore "github.com/mpapenbr/pitwall-go/pkg/store/postgres"
)

var (
	slot      string
	listSlots bool
)

var ErrSlotsNotSupported = errors.New("listing slots requires the postgres store")

func NewStandingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "shows the standings of a saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			util.SetupLogger()
			return showStandings(cmd.Context(), os.Stdout)
		},
	}
	cmd.Flags().StringVar(&config.Store,
		"store",
		util.StoreFile,
		"where the session is saved (file, postgres)")
	cmd.Flags().StringVar(&config.SaveDir,
		"save-dir",
		util.DefaultSaveDir(),
		"directory of the file store")
	cmd.Flags().StringVar(&slot,
		"slot",
		store.DefaultSlot,
		"save slot")
	cmd.Flags().BoolVar(&listSlots,
		"list",
		false,
		"lists the saved slots (postgres only)")
	return cmd
}

func showStandings(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := util.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	if listSlots {
		pg, ok := st.(*pgstore.Store)
		if !ok {
			return ErrSlotsNotSupported
		}
		return printSlots(ctx, w, pg)
	}
	s, err := st.Load(ctx, slot)
	if err != nil {
		return fmt.Errorf("slot %s: %w", slot, err)
	}
	printSession(w, s)
	return nil
}

func printSession(w io.Writer, s *session.State) {
	fmt.Fprintf(w, "%s session %s\n", s.Mode, s.ID)
	render.Standings(w, &s.Season, s.Teams)
	if last, ok := s.Season.Last(); ok {
		render.Race(w, &last)
	}
}

func printSlots(ctx context.Context, w io.Writer, pg *pgstore.Store) error {
	slots, err := pg.Slots(ctx)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Slot", "Session", "Mode", "Race", "Updated"})
	for _, si := range slots {
		t.AppendRow(table.Row{
			si.Slot, si.SessionID, si.Mode, si.RaceIndex,
			si.UpdatedAt.Local().Format(time.DateTime),
		})
	}
	t.Render()
	return nil
}
