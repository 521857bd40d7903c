package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mpapenbr/pitwall-go/pkg/channel"
	"github.com/mpapenbr/pitwall-go/pkg/channel/factory"
)

var ChannelTypeMemory factory.ChannelType = "memory"

type (
	Option func(*memoryChannel)

	// Store holds the entries. Channels sharing a store see each others
	// writes.
	Store struct {
		mu      sync.RWMutex
		entries map[string]entry
	}
	entry struct {
		value   []byte
		created time.Time
	}
	memoryChannel struct {
		cfg   *channel.Config
		store *Store
	}
)

var defaultStore = NewStore()

func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

// WithStore lets the channel use the given store instead of the process wide
// default store.
func WithStore(s *Store) Option {
	return func(c *memoryChannel) {
		c.store = s
	}
}

func New(common []channel.Option, specific []Option) (channel.Channel, error) {
	ret := &memoryChannel{
		cfg:   channel.NewConfig(common...),
		store: defaultStore,
	}
	for _, o := range specific {
		o(ret)
	}
	return ret, nil
}

func (c *memoryChannel) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.entries[key] = entry{value: append([]byte{}, value...), created: time.Now()}
	return nil
}

func (c *memoryChannel) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	e, ok := c.store.entries[key]
	if !ok {
		return nil, channel.ErrNotFound
	}
	if c.cfg.TTL > 0 && time.Since(e.created) > c.cfg.TTL {
		return nil, channel.ErrNotFound
	}
	return append([]byte{}, e.value...), nil
}

func (c *memoryChannel) Close() error {
	return nil
}

func init() {
	factory.Register(ChannelTypeMemory, New)
}
