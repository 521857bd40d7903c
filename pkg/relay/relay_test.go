//nolint:funlen // ok for tests
package relay

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	gtassert "gotest.tools/v3/assert"

	"github.com/mpapenbr/pitwall-go/pkg/channel"
	httpchannel "github.com/mpapenbr/pitwall-go/pkg/channel/impl/http"
	"github.com/mpapenbr/pitwall-go/pkg/channel/impl/memory"
)

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, channel.Channel) {
	t.Helper()
	backend, err := memory.New(nil, []memory.Option{memory.WithStore(memory.NewStore())})
	gtassert.NilError(t, err)
	s := New(backend, opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return ts, backend
}

func do(t *testing.T, method, url string, body []byte, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, bytes.NewReader(body))
	gtassert.NilError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	gtassert.NilError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRelay(t *testing.T) {
	ts, backend := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "missing", method: http.MethodGet, path: "/kv/pitwall_v1_ABC123", want: http.StatusNotFound},
		{name: "put", method: http.MethodPut, path: "/kv/pitwall_v1_ABC123", body: `{"a":1}`, want: http.StatusNoContent},
		{name: "get", method: http.MethodGet, path: "/kv/pitwall_v1_ABC123", want: http.StatusOK},
		{name: "empty put", method: http.MethodPut, path: "/kv/pitwall_v1_ABC123", want: http.StatusBadRequest},
		{name: "bad key", method: http.MethodGet, path: "/kv/a%20b", want: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, path: "/kv/pitwall_v1_ABC123", want: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, ts.URL+tt.path, []byte(tt.body), nil)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	v, err := backend.Get(context.Background(), "pitwall_v1_ABC123")
	gtassert.NilError(t, err)
	assert.Equal(t, `{"a":1}`, string(v))
}

func TestRelay_ETag(t *testing.T) {
	ts, _ := newTestServer(t)
	put := do(t, http.MethodPut, ts.URL+"/kv/k1", []byte(`{"x":true}`), nil)
	etag := put.Header.Get("ETag")
	assert.NotEmpty(t, etag)

	resp := do(t, http.MethodGet, ts.URL+"/kv/k1", nil, map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/kv/k1", nil, map[string]string{"If-None-Match": `"other"`})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRelay_TooLarge(t *testing.T) {
	ts, _ := newTestServer(t)
	big := bytes.Repeat([]byte("a"), MaxValueSize+1)
	resp := do(t, http.MethodPut, ts.URL+"/kv/k1", big, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestRelay_ReadCache(t *testing.T) {
	ts, backend := newTestServer(t, WithReadCache(time.Minute))
	ctx := context.Background()
	gtassert.NilError(t, backend.Put(ctx, "k1", []byte(`"v1"`)))

	resp := do(t, http.MethodGet, ts.URL+"/kv/k1", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// written around the relay, the cached value is still served
	gtassert.NilError(t, backend.Put(ctx, "k1", []byte(`"v2"`)))
	resp = do(t, http.MethodGet, ts.URL+"/kv/k1", nil, nil)
	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	assert.Equal(t, `"v1"`, buf.String())

	// written through the relay, the cache is updated
	do(t, http.MethodPut, ts.URL+"/kv/k1", []byte(`"v3"`), nil)
	resp = do(t, http.MethodGet, ts.URL+"/kv/k1", nil, nil)
	buf.Reset()
	_, _ = buf.ReadFrom(resp.Body)
	assert.Equal(t, `"v3"`, buf.String())
}

func TestRelay_HTTPChannel(t *testing.T) {
	ts, _ := newTestServer(t)
	ch, err := httpchannel.New(nil, []httpchannel.Option{httpchannel.WithBaseURL(ts.URL + "/")})
	gtassert.NilError(t, err)
	defer ch.Close()
	ctx := context.Background()

	_, err = ch.Get(ctx, "pitwall_v1_ROOM01")
	assert.ErrorIs(t, err, channel.ErrNotFound)
	gtassert.NilError(t, ch.Put(ctx, "pitwall_v1_ROOM01", []byte(`{"status":"lobby"}`)))
	got, err := ch.Get(ctx, "pitwall_v1_ROOM01")
	gtassert.NilError(t, err)
	assert.Equal(t, `{"status":"lobby"}`, string(got))
}

func TestRelay_Watch(t *testing.T) {
	ts, backend := newTestServer(t)
	gtassert.NilError(t, backend.Put(context.Background(), "k1", []byte(`"first"`)))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/watch/k1"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	gtassert.NilError(t, err)
	defer resp.Body.Close()
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, msg, err := conn.ReadMessage()
	gtassert.NilError(t, err)
	assert.Equal(t, `"first"`, string(msg))

	// the subscription is registered before the current value is sent
	do(t, http.MethodPut, ts.URL+"/kv/other", []byte(`"ignored"`), nil)
	do(t, http.MethodPut, ts.URL+"/kv/k1", []byte(`"second"`), nil)
	_, msg, err = conn.ReadMessage()
	gtassert.NilError(t, err)
	assert.Equal(t, `"second"`, string(msg))
}
