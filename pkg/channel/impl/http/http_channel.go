package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/channel"
	"github.com/mpapenbr/pitwall-go/pkg/channel/factory"
)

var ChannelTypeHTTP factory.ChannelType = "http"

// values larger than this are rejected by the relay
const MaxValueSize = 1 << 20

type (
	Option            func(*httpChannelConfig)
	httpChannelConfig struct {
		baseURL string
		client  *http.Client
	}

	// httpChannel talks to a pitwall relay server
	httpChannel struct {
		cfg    *channel.Config
		ownCfg *httpChannelConfig
		log    *log.Logger
	}
)

func WithBaseURL(baseURL string) Option {
	return func(c *httpChannelConfig) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithClient(cli *http.Client) Option {
	return func(c *httpChannelConfig) {
		c.client = cli
	}
}

func New(common []channel.Option, specific []Option) (channel.Channel, error) {
	ownCfg := &httpChannelConfig{baseURL: "http://localhost:8090"}
	for _, o := range specific {
		o(ownCfg)
	}
	cfg := channel.NewConfig(common...)
	if ownCfg.client == nil {
		ownCfg.client = &http.Client{Timeout: cfg.Timeout}
	}
	if _, err := url.Parse(ownCfg.baseURL); err != nil {
		return nil, err
	}
	return &httpChannel{
		cfg:    cfg,
		ownCfg: ownCfg,
		log:    log.Default().Named("channel.http"),
	}, nil
}

func (c *httpChannel) keyURL(key string) string {
	return fmt.Sprintf("%s/kv/%s", c.ownCfg.baseURL, url.PathEscape(key))
}

func (c *httpChannel) Put(ctx context.Context, key string, value []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.keyURL(key), bytes.NewReader(value))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.ownCfg.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("put %s: unexpected status %s", key, resp.Status)
	}
	return nil
}

func (c *httpChannel) Get(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.keyURL(key), http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := c.ownCfg.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(io.LimitReader(resp.Body, MaxValueSize))
	case http.StatusNotFound:
		return nil, channel.ErrNotFound
	default:
		c.log.Debug("unexpected response", log.String("key", key),
			log.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("get %s: unexpected status %s", key, resp.Status)
	}
}

func (c *httpChannel) Close() error {
	c.ownCfg.client.CloseIdleConnections()
	return nil
}

func init() {
	factory.Register(ChannelTypeHTTP, New)
}
