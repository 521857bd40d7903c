package loadercache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/pitwall-go/pkg/utils/cache"
)

func TestLoaderCache(t *testing.T) {
	ctx := context.Background()
	calls := 0
	boom := errors.New("boom")
	c := New(
		WithExpiration[string, int](20*time.Millisecond),
		WithLoader[string, int](func(_ context.Context, key string) (int, error) {
			calls++
			if key == "bad" {
				return 0, boom
			}
			return len(key), nil
		}),
	)

	v, err := c.Get(ctx, "abc")
	assert.NoError(t, err)
	assert.Equal(t, 3, v)
	_, _ = c.Get(ctx, "abc")
	assert.Equal(t, 1, calls)

	_, err = c.Get(ctx, "bad")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, c.Len(), "errors are not cached")

	c.Set(ctx, "x", 42)
	v, _ = c.Get(ctx, "x")
	assert.Equal(t, 42, v)

	c.Invalidate(ctx, "abc")
	_, _ = c.Get(ctx, "abc")
	assert.Equal(t, 3, calls)

	time.Sleep(30 * time.Millisecond)
	_, _ = c.Get(ctx, "abc")
	assert.Equal(t, 4, calls)
}

func TestNoLoader(t *testing.T) {
	c := New[string, int]()
	_, err := c.Get(context.Background(), "a")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestSharedLoad(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := New(
		WithLoader[string, int](func(_ context.Context, key string) (int, error) {
			calls.Add(1)
			<-release
			return 7, nil
		}),
	)
	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = c.Get(context.Background(), "room")
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []int{7, 7, 7, 7, 7}, results)
}
