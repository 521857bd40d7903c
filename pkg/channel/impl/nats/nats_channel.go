package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/channel"
	"github.com/mpapenbr/pitwall-go/pkg/channel/factory"
)

var ChannelTypeNats factory.ChannelType = "nats"

const DefaultBucket = "pitwall_rooms"

type (
	Option            func(*natsChannelConfig)
	natsChannelConfig struct {
		nc     *nats.Conn
		url    string
		bucket string
	}

	// natsChannel stores the values in a JetStream key/value bucket
	natsChannel struct {
		cfg    *channel.Config
		ownCfg *natsChannelConfig
		log    *log.Logger
		kv     jetstream.KeyValue
		ownsNC bool
	}
)

var ErrNoConnection = errors.New("neither NATS connection nor URL given")

func WithNATS(nc *nats.Conn) Option {
	return func(c *natsChannelConfig) {
		c.nc = nc
	}
}

// WithURL lets the channel create its own connection
func WithURL(url string) Option {
	return func(c *natsChannelConfig) {
		c.url = url
	}
}

func WithBucket(bucket string) Option {
	return func(c *natsChannelConfig) {
		c.bucket = bucket
	}
}

func New(common []channel.Option, specific []Option) (channel.Channel, error) {
	ownCfg := &natsChannelConfig{bucket: DefaultBucket}
	for _, o := range specific {
		o(ownCfg)
	}
	ret := &natsChannel{
		cfg:    channel.NewConfig(common...),
		ownCfg: ownCfg,
		log:    log.Default().Named("channel.nats"),
	}
	if ownCfg.nc == nil {
		if ownCfg.url == "" {
			return nil, ErrNoConnection
		}
		nc, err := nats.Connect(ownCfg.url, nats.Name("pitwall"))
		if err != nil {
			return nil, err
		}
		ownCfg.nc = nc
		ret.ownsNC = true
	}
	ret.log.Debug("Initializing NATS key/value channel",
		log.String("bucket", ownCfg.bucket))
	if err := ret.init(); err != nil {
		//nolint:errcheck // already failing
		ret.Close()
		return nil, err
	}
	return ret, nil
}

func (c *natsChannel) init() error {
	var js jetstream.JetStream
	var err error
	if js, err = jetstream.New(c.ownCfg.nc); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()
	c.kv, err = js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      c.ownCfg.bucket,
		Description: "shared state of pitwall rooms",
		TTL:         c.cfg.TTL,
		History:     1,
	})
	return err
}

func (c *natsChannel) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	rev, err := c.kv.Put(ctx, key, value)
	if err != nil {
		return err
	}
	c.log.Debug("put", log.String("key", key), log.Uint64("revision", rev))
	return nil
}

func (c *natsChannel) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	kve, err := c.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, channel.ErrNotFound
		}
		return nil, err
	}
	return kve.Value(), nil
}

func (c *natsChannel) Close() error {
	if c.ownsNC && c.ownCfg.nc != nil {
		return c.ownCfg.nc.Drain()
	}
	return nil
}

func init() {
	factory.Register(ChannelTypeNats, New)
}
