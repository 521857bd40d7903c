package relay

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/channel"
	"github.com/mpapenbr/pitwall-go/pkg/channel/impl/memory"
	natschannel "github.com/mpapenbr/pitwall-go/pkg/channel/impl/nats"
	"github.com/mpapenbr/pitwall-go/pkg/cmd/util"
	"github.com/mpapenbr/pitwall-go/pkg/config"
	"github.com/mpapenbr/pitwall-go/pkg/relay"
)

var ErrUnsupportedBackend = errors.New("relay backend must be memory or nats")

//nolint:funlen // by design
func NewRelayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "starts the http relay server for networked games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer()
		},
	}
	cmd.Flags().StringVarP(&config.RelayAddr,
		"addr",
		"a",
		"localhost:8090",
		"relay server listen address")
	cmd.Flags().StringVar(&config.TLSServerAddr,
		"tls-addr",
		"",
		"relay server listen address (tls)")
	cmd.Flags().StringVar(&config.Channel,
		"backend",
		string(memory.ChannelTypeMemory),
		"where the relay keeps the rooms (memory, nats)")
	cmd.Flags().StringVar(&config.NatsURL,
		"nats-url",
		"nats://localhost:4222",
		"URL of the NATS server")
	cmd.Flags().StringVar(&config.NatsBucket,
		"nats-bucket",
		natschannel.DefaultBucket,
		"JetStream key/value bucket holding the rooms")
	cmd.Flags().StringVar(&config.RelayCacheTTL,
		"cache-ttl",
		"0s",
		"keep read values this long before asking the backend again (0 disables)")
	cmd.Flags().StringVar(&config.TLSCertFile,
		"tls-cert",
		"",
		"file containing the TLS certificate")
	cmd.Flags().StringVar(&config.TLSKeyFile,
		"tls-key",
		"",
		"file containing the TLS key")
	cmd.Flags().StringVar(&config.TLSCAFile,
		"tls-ca",
		"",
		"file containing the TLS root CA")
	cmd.Flags().StringVar(&config.TraefikCerts,
		"traefik-certs",
		"",
		"traefik acme file containing the certificates")
	cmd.Flags().StringVar(&config.TraefikCertDomain,
		"traefik-cert-domain",
		"",
		"domain to lookup within the traefik certs")
	return cmd
}

func openBackend() (channel.Channel, error) {
	switch config.Channel {
	case string(memory.ChannelTypeMemory), string(natschannel.ChannelTypeNats):
		return util.OpenChannel()
	default:
		return nil, ErrUnsupportedBackend
	}
}

//nolint:funlen // by design
func startServer() error {
	util.SetupLogger()
	log.Debug("Config:",
		log.String("addr", config.RelayAddr),
		log.String("backend", config.Channel),
		log.String("nats", config.NatsURL),
	)
	util.StartProfiling()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	telemetry := util.StartTelemetry(ctx)

	backend, err := openBackend()
	if err != nil {
		log.Error("backend could not be opened", log.ErrorField(err))
		return err
	}
	defer backend.Close()

	srv := relay.New(backend,
		relay.WithLogger(log.Default().Named("relay")),
		relay.WithReadCache(util.ParseDuration(config.RelayCacheTTL, 0)))
	defer srv.Close()

	errs := make(chan error, 2)
	servers := []*http.Server{}
	start := func(s *http.Server, tls bool) {
		servers = append(servers, s)
		go func() {
			var err error
			if tls {
				err = s.ListenAndServeTLS("", "")
			} else {
				err = s.ListenAndServe()
			}
			if !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}()
	}

	log.Info("Starting relay server", log.String("addr", config.RelayAddr))
	//nolint:gosec // by design
	start(&http.Server{
		Addr:    config.RelayAddr,
		Handler: srv.Handler(),
	}, false)

	if config.TLSServerAddr != "" {
		tlsConfig := relay.NewTLSConfig(ctx, relay.TLSFiles{
			CertFile:      config.TLSCertFile,
			KeyFile:       config.TLSKeyFile,
			CAFile:        config.TLSCAFile,
			TraefikCerts:  config.TraefikCerts,
			TraefikDomain: config.TraefikCertDomain,
		})
		if tlsConfig == nil {
			log.Warn("no certificate available, tls listener disabled")
		} else {
			log.Info("Starting relay server (tls)", log.String("addr", config.TLSServerAddr))
			//nolint:gosec // by design
			start(&http.Server{
				Addr:      config.TLSServerAddr,
				Handler:   srv.Handler(),
				TLSConfig: tlsConfig,
			}, true)
		}
	}
	util.SetupGoRoutinesDump()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	select {
	case v := <-sigChan:
		log.Debug("Got signal ", log.Any("signal", v))
	case err = <-errs:
		log.Error("server stopped", log.ErrorField(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	for _, s := range servers {
		if serr := s.Shutdown(shutdownCtx); serr != nil {
			log.Warn("shutdown", log.ErrorField(serr))
		}
	}
	if telemetry != nil {
		telemetry.Shutdown()
	}
	log.Info("Server terminated")
	return err
}
