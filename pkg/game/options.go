package game

import (
	"time"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/catalog"
	"github.com/mpapenbr/pitwall-go/pkg/oracle"
	"github.com/mpapenbr/pitwall-go/pkg/reconcile"
	"github.com/mpapenbr/pitwall-go/pkg/store"
)

type (
	Option func(*clientConfig)

	clientConfig struct {
		catalog      *catalog.Catalog
		store        store.Store
		slot         string
		transport    reconcile.Transport
		pollInterval time.Duration
		race         oracle.RaceOracle
		advice       oracle.AdviceOracle
		log          *log.Logger
	}
)

func WithCatalog(c *catalog.Catalog) Option {
	return func(cfg *clientConfig) {
		cfg.catalog = c
	}
}

// WithStore sets where the session is saved after every change
func WithStore(s store.Store) Option {
	return func(cfg *clientConfig) {
		cfg.store = s
	}
}

func WithSlot(slot string) Option {
	return func(cfg *clientConfig) {
		cfg.slot = slot
	}
}

// WithTransport enables networked sessions
func WithTransport(t reconcile.Transport) Option {
	return func(cfg *clientConfig) {
		cfg.transport = t
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.pollInterval = d
	}
}

func WithRaceOracle(o oracle.RaceOracle) Option {
	return func(cfg *clientConfig) {
		cfg.race = o
	}
}

func WithAdviceOracle(o oracle.AdviceOracle) Option {
	return func(cfg *clientConfig) {
		cfg.advice = o
	}
}

func WithLogger(l *log.Logger) Option {
	return func(cfg *clientConfig) {
		cfg.log = l
	}
}

func newConfig(opts ...Option) *clientConfig {
	cfg := &clientConfig{
		slot: store.DefaultSlot,
		log:  log.Default().Named("game"),
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.catalog == nil {
		cfg.catalog = catalog.Default()
	}
	if cfg.store == nil {
		cfg.store = store.NewMemory()
	}
	if cfg.race == nil {
		cfg.race = oracle.NewSimulator(cfg.catalog)
	}
	if cfg.advice == nil {
		cfg.advice = oracle.Advisor{}
	}
	return cfg
}
