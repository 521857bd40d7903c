// Package relay serves a key/value channel over http. Clients use the http
// channel implementation to talk to it.
package relay

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/channel"
	"github.com/mpapenbr/pitwall-go/pkg/utils"
	"github.com/mpapenbr/pitwall-go/pkg/utils/broadcast"
	"github.com/mpapenbr/pitwall-go/pkg/utils/cache"
	"github.com/mpapenbr/pitwall-go/pkg/utils/cache/loadercache"
)

const (
	// values larger than this are rejected
	MaxValueSize = 1 << 20
	keyPattern   = "[A-Za-z0-9_.-]{1,128}"
)

type (
	// Update is broadcast to watchers after every successful put
	Update struct {
		Key   string
		Value []byte
	}

	Server struct {
		router   *mux.Router
		backend  channel.Channel
		log      *log.Logger
		cacheTTL time.Duration
		cache    cache.Cache[string, []byte]
		updates  chan Update
		watchers broadcast.Server[Update]
		requests metric.Int64Counter
	}
	Option func(*Server)
)

func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithReadCache keeps values for d before asking the backend again.
// Puts through this server update the cache immediately.
func WithReadCache(d time.Duration) Option {
	return func(s *Server) {
		s.cacheTTL = d
	}
}

func New(backend channel.Channel, opts ...Option) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		backend: backend,
		log:     log.Default().Named("relay"),
		updates: make(chan Update, 16),
	}
	for _, o := range opts {
		o(s)
	}
	if s.cacheTTL > 0 {
		s.cache = loadercache.New(
			loadercache.WithExpiration[string, []byte](s.cacheTTL),
			loadercache.WithLoader[string, []byte](backend.Get),
			loadercache.WithLogger[string, []byte](s.log.Named("cache")),
		)
	}
	s.watchers = broadcast.NewServer("relay.put", "relay", s.updates,
		broadcast.WithBuffer[Update](4),
		broadcast.WithLogger[Update](s.log.Named("broadcast")))
	s.setupMetrics()
	s.setupRoutes()
	return s
}

func (s *Server) setupMetrics() {
	meter := otel.GetMeterProvider().Meter("pitwall.relay")
	var err error
	s.requests, err = meter.Int64Counter("pitwall.relay.requests",
		metric.WithDescription("Number of handled requests"),
		metric.WithUnit("{count}"))
	if err != nil {
		s.log.Error("failed to register metric", log.ErrorField(err))
	}
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/kv/{key:"+keyPattern+"}", s.handleGet).
		Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/kv/{key:"+keyPattern+"}", s.handlePut).Methods(http.MethodPut)
	s.router.HandleFunc("/watch/{key:"+keyPattern+"}", s.handleWatch).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler wraps the server for plain text http/2 and permissive CORS
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(newCORS().Handler(s), &http2.Server{})
}

func (s *Server) Close() {
	s.watchers.Close()
}

func (s *Server) count(ctx context.Context, method string, status int) {
	if s.requests != nil {
		s.requests.Add(ctx, 1, metric.WithAttributes(
			attribute.String("method", method),
			attribute.Int("status", status)))
	}
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	if len(body) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	}
	w.WriteHeader(status)
	if len(body) > 0 && r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
	s.count(r.Context(), r.Method, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, []byte(`{"status":"ok"}`))
}

func (s *Server) get(ctx context.Context, key string) ([]byte, error) {
	if s.cache != nil {
		return s.cache.Get(ctx, key)
	}
	return s.backend.Get(ctx, key)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	value, err := s.get(r.Context(), key)
	switch {
	case errors.Is(err, channel.ErrNotFound):
		s.respond(w, r, http.StatusNotFound, nil)
		return
	case err != nil:
		s.log.Warn("backend get failed", log.String("key", key), log.ErrorField(err))
		s.respond(w, r, http.StatusBadGateway, nil)
		return
	}
	etag := `"` + utils.Digest(value) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		s.respond(w, r, http.StatusNotModified, nil)
		return
	}
	s.respond(w, r, http.StatusOK, value)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	value, err := io.ReadAll(io.LimitReader(r.Body, MaxValueSize+1))
	if err != nil {
		s.respond(w, r, http.StatusBadRequest, nil)
		return
	}
	if len(value) > MaxValueSize {
		s.respond(w, r, http.StatusRequestEntityTooLarge, nil)
		return
	}
	if len(value) == 0 {
		s.respond(w, r, http.StatusBadRequest, nil)
		return
	}
	if err := s.backend.Put(r.Context(), key, value); err != nil {
		s.log.Warn("backend put failed", log.String("key", key), log.ErrorField(err))
		s.respond(w, r, http.StatusBadGateway, nil)
		return
	}
	if s.cache != nil {
		s.cache.Set(r.Context(), key, value)
	}
	s.log.Debug("stored value",
		log.String("key", key),
		log.Int("size", len(value)),
		log.String("digest", utils.ShortDigest(value)))
	select {
	case s.updates <- Update{Key: key, Value: value}:
	default:
		s.log.Debug("watch queue full, dropping update", log.String("key", key))
	}
	w.Header().Set("ETag", `"`+utils.Digest(value)+`"`)
	s.respond(w, r, http.StatusNoContent, nil)
}
