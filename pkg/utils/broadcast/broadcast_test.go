package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func receive[T any](t *testing.T, ch <-chan T) (T, bool) {
	t.Helper()
	select {
	case v, ok := <-ch:
		return v, ok
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
	var zero T
	return zero, false
}

func TestServer(t *testing.T) {
	source := make(chan string)
	b := NewServer("test", "test", source, WithBuffer[string](4))
	defer b.Close()

	s1 := b.Subscribe()
	s2 := b.Subscribe()
	source <- "hello"

	v, ok := receive(t, s1)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
	v, _ = receive(t, s2)
	assert.Equal(t, "hello", v)

	b.CancelSubscription(s2)
	_, ok = receive(t, s2)
	assert.False(t, ok, "cancelled subscription is closed")

	source <- "again"
	v, _ = receive(t, s1)
	assert.Equal(t, "again", v)
}

func TestServer_SourceClosed(t *testing.T) {
	source := make(chan int)
	b := NewServer("test", "closing", source)
	s := b.Subscribe()
	close(source)
	_, ok := receive(t, s)
	assert.False(t, ok)

	// subscriptions after shutdown are closed immediately
	_, ok = receive(t, b.Subscribe())
	assert.False(t, ok)
}

func TestServer_SlowSubscriber(t *testing.T) {
	source := make(chan int)
	b := NewServer("test", "slow", source, WithSendTimeout[int](20*time.Millisecond))
	defer b.Close()
	fast := b.Subscribe()
	_ = b.Subscribe() // never read

	done := make(chan struct{})
	go func() {
		for i := range 3 {
			source <- i
		}
		close(done)
	}()
	for i := range 3 {
		v, _ := receive(t, fast)
		assert.Equal(t, i, v)
	}
	<-done
}
