package nats

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	gtassert "gotest.tools/v3/assert"

	"github.com/mpapenbr/pitwall-go/pkg/channel"
	"github.com/mpapenbr/pitwall-go/testsupport/tcnats"
)

func TestNew_NoConnection(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoConnection)
}

func TestNatsChannel(t *testing.T) {
	if os.Getenv("PITWALL_CONTAINER_TESTS") == "" {
		t.Skip("set PITWALL_CONTAINER_TESTS to run nats tests")
	}
	ctx := context.Background()
	c, err := tcnats.SetupNats(ctx)
	gtassert.NilError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	ch, err := New(nil, []Option{WithURL(c.URL), WithBucket("pitwall_test")})
	gtassert.NilError(t, err)
	defer ch.Close()

	_, err = ch.Get(ctx, "pitwall_v1_ABC123")
	assert.ErrorIs(t, err, channel.ErrNotFound)

	gtassert.NilError(t, ch.Put(ctx, "pitwall_v1_ABC123", []byte(`{"a":1}`)))
	gtassert.NilError(t, ch.Put(ctx, "pitwall_v1_ABC123", []byte(`{"a":2}`)))
	got, err := ch.Get(ctx, "pitwall_v1_ABC123")
	gtassert.NilError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))
}
