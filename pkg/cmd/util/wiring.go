package util

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pgx-contrib/pgxtrace"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/catalog"
	"github.com/mpapenbr/pitwall-go/pkg/channel"
	"github.com/mpapenbr/pitwall-go/pkg/channel/factory"
	httpchannel "github.com/mpapenbr/pitwall-go/pkg/channel/impl/http"
	"github.com/mpapenbr/pitwall-go/pkg/channel/impl/memory"
	natschannel "github.com/mpapenbr/pitwall-go/pkg/channel/impl/nats"
	"github.com/mpapenbr/pitwall-go/pkg/config"
	"github.com/mpapenbr/pitwall-go/pkg/db/postgres"
	"github.com/mpapenbr/pitwall-go/pkg/store"
	"github.com/mpapenbr/pitwall-go/pkg/store/file"
	pgstore "github.com/mpapenbr/pitwall-go/pkg/store/postgres"
	"github.com/mpapenbr/pitwall-go/pkg/utils"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// DefaultSaveDir is the directory of the file store below the user's
// config directory
func DefaultSaveDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pitwall")
	}
	return ".pitwall"
}

// LoadCatalog returns the built-in catalog unless a catalog file is given
func LoadCatalog() (*catalog.Catalog, error) {
	if config.CatalogFile == "" {
		return catalog.Default(), nil
	}
	log.Info("Loading catalog", log.String("file", config.CatalogFile))
	return catalog.Load(config.CatalogFile)
}

// OpenChannel creates the shared channel selected by config.Channel.
// An empty channel type disables networked play and returns nil.
func OpenChannel() (channel.Channel, error) {
	common := []channel.Option{channel.WithTimeout(5 * time.Second)}
	switch factory.ChannelType(config.Channel) {
	case "":
		return nil, nil
	case natschannel.ChannelTypeNats:
		WaitForRequiredServices(utils.ExtractFromNatsURL(config.NatsURL))
		return factory.New[channel.Channel](natschannel.ChannelTypeNats, common,
			[]natschannel.Option{
				natschannel.WithURL(config.NatsURL),
				natschannel.WithBucket(config.NatsBucket),
			})
	case httpchannel.ChannelTypeHTTP:
		healthURL := strings.TrimSuffix(config.RelayURL, "/") + "/healthz"
		if err := utils.WaitForHTTPResponse(healthURL,
			ParseDuration(config.WaitForServices, 60*time.Second)); err != nil {
			return nil, err
		}
		return factory.New[channel.Channel](httpchannel.ChannelTypeHTTP, common,
			[]httpchannel.Option{httpchannel.WithBaseURL(config.RelayURL)})
	case memory.ChannelTypeMemory:
		return factory.New[channel.Channel](memory.ChannelTypeMemory, common,
			[]memory.Option{})
	default:
		return nil, fmt.Errorf("%w: %s (known: %v)",
			factory.ErrChannelTypeNotSupported, config.Channel, factory.Types())
	}
}

// NewQueryTracer logs queries and adds otel spans if telemetry is enabled
func NewQueryTracer() pgx.QueryTracer {
	tracers := pgxtrace.CompositeQueryTracer{
		postgres.NewMyTracer(NewSQLLogger(), log.DebugLevel),
	}
	if config.EnableTelemetry {
		tracers = append(tracers, postgres.NewOtlpTracer())
	}
	return tracers
}

// OpenStore creates the session store selected by config.Store
func OpenStore(ctx context.Context) (store.Store, error) {
	switch config.Store {
	case StoreMemory:
		return store.NewMemory(), nil
	case StorePostgres:
		WaitForRequiredServices(utils.ExtractFromDBURL(config.DB))
		pool, err := postgres.InitWithUrl(ctx, config.DB,
			postgres.WithTracer(NewQueryTracer()))
		if err != nil {
			return nil, err
		}
		return pgstore.New(pool, pgstore.WithOwnedPool()), nil
	case StoreFile, "":
		return file.New(config.SaveDir)
	default:
		return nil, fmt.Errorf("unknown store type: %s", config.Store)
	}
}
