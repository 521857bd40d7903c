package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gtassert "gotest.tools/v3/assert"

	"github.com/mpapenbr/pitwall-go/pkg/channel"
	"github.com/mpapenbr/pitwall-go/pkg/channel/factory"
)

func TestMemoryChannel(t *testing.T) {
	store := NewStore()
	a, err := New(nil, []Option{WithStore(store)})
	gtassert.NilError(t, err)
	b, err := New(nil, []Option{WithStore(store)})
	gtassert.NilError(t, err)
	ctx := context.Background()

	_, err = a.Get(ctx, "room")
	assert.ErrorIs(t, err, channel.ErrNotFound)

	gtassert.NilError(t, a.Put(ctx, "room", []byte("v1")))
	got, err := b.Get(ctx, "room")
	gtassert.NilError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// later writes replace earlier ones
	gtassert.NilError(t, b.Put(ctx, "room", []byte("v2")))
	got, err = a.Get(ctx, "room")
	gtassert.NilError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestMemoryChannel_TTL(t *testing.T) {
	c, err := New([]channel.Option{channel.WithTTL(time.Nanosecond)}, []Option{WithStore(NewStore())})
	gtassert.NilError(t, err)
	gtassert.NilError(t, c.Put(context.Background(), "k", []byte("x")))
	time.Sleep(time.Millisecond)
	_, err = c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, channel.ErrNotFound)
}

func TestFactory(t *testing.T) {
	c, err := factory.New[channel.Channel, Option](ChannelTypeMemory, nil, nil)
	gtassert.NilError(t, err)
	assert.NotNil(t, c)

	_, err = factory.New[channel.Channel, Option]("unknown", nil, nil)
	assert.ErrorIs(t, err, factory.ErrChannelTypeNotSupported)

	_, err = factory.New[channel.Channel, string](ChannelTypeMemory, nil, nil)
	assert.ErrorIs(t, err, factory.ErrChannelWrongCreator)
}
