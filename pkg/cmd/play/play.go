package play

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/cmd/util"
	"github.com/mpapenbr/pitwall-go/pkg/config"
	"github.com/mpapenbr/pitwall-go/pkg/game"
	"github.com/mpapenbr/pitwall-go/pkg/oracle"
	"github.com/mpapenbr/pitwall-go/pkg/reconcile"
	"github.com/mpapenbr/pitwall-go/pkg/store"
)

var slot string

func NewPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "starts an interactive game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startPlay(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&config.Channel,
		"channel",
		"",
		"shared channel for networked play (nats, http, memory); empty disables it")
	cmd.Flags().StringVar(&config.NatsURL,
		"nats-url",
		"nats://localhost:4222",
		"URL of the NATS server")
	cmd.Flags().StringVar(&config.NatsBucket,
		"nats-bucket",
		"pitwall_rooms",
		"JetStream key/value bucket holding the rooms")
	cmd.Flags().StringVar(&config.RelayURL,
		"relay-url",
		"http://localhost:8090",
		"base URL of the relay server")
	cmd.Flags().StringVar(&config.PollInterval,
		"poll-interval",
		reconcile.DefaultPollInterval.String(),
		"interval between room updates")
	cmd.Flags().StringVar(&config.Store,
		"store",
		util.StoreFile,
		"where the session is saved (file, postgres, memory)")
	cmd.Flags().StringVar(&config.SaveDir,
		"save-dir",
		util.DefaultSaveDir(),
		"directory of the file store")
	cmd.Flags().StringVar(&slot,
		"slot",
		store.DefaultSlot,
		"save slot")
	cmd.Flags().Uint64Var(&config.Seed,
		"seed",
		0,
		"seed of the race simulator (0: random)")
	return cmd
}

func startPlay(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	util.SetupLogger()
	util.StartProfiling()
	if telemetry := util.StartTelemetry(ctx); telemetry != nil {
		defer telemetry.Shutdown()
	}

	cat, err := util.LoadCatalog()
	if err != nil {
		return err
	}
	st, err := util.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := []game.Option{
		game.WithCatalog(cat),
		game.WithStore(st),
		game.WithSlot(slot),
		game.WithRaceOracle(oracle.NewSimulator(cat, oracle.WithSeed(config.Seed))),
		game.WithPollInterval(util.ParseDuration(config.PollInterval, reconcile.DefaultPollInterval)),
	}
	ch, err := util.OpenChannel()
	if err != nil {
		return err
	}
	if ch != nil {
		defer ch.Close()
		opts = append(opts, game.WithTransport(reconcile.NewKVTransport(ch)))
	}

	c := game.New(ctx, opts...)
	defer c.Close()

	sh := newShell(c, os.Stdout)
	go sh.watch(c.Subscribe())

	sh.help()
	sh.status()
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	for {
		fmt.Fprint(sh.out, "> ")
		select {
		case <-ctx.Done():
			log.Debug("interrupted")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := sh.exec(ctx, line)
			if err != nil {
				fmt.Fprintf(sh.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}
