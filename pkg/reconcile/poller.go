package reconcile

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mpapenbr/pitwall-go/log"
)

const DefaultPollInterval = 3 * time.Second

type (
	// PollResult is delivered for every successfully fetched snapshot.
	// Room and Generation identify the poller run so the receiver can drop
	// results of a run that is no longer current.
	PollResult struct {
		Room       string
		Generation uint64
		Snapshot   *Snapshot
	}

	Poller struct {
		transport Transport
		interval  time.Duration
		log       *log.Logger
		fetches   metric.Int64Counter
	}
	PollerOption func(*Poller)
)

func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithPollerLogger(l *log.Logger) PollerOption {
	return func(p *Poller) {
		p.log = l
	}
}

func NewPoller(t Transport, opts ...PollerOption) *Poller {
	ret := &Poller{
		transport: t,
		interval:  DefaultPollInterval,
		log:       log.Default().Named("reconcile.poller"),
	}
	for _, o := range opts {
		o(ret)
	}
	ret.setupMetrics()
	return ret
}

func (p *Poller) setupMetrics() {
	meter := otel.GetMeterProvider().Meter("pitwall.reconcile")
	var err error
	p.fetches, err = meter.Int64Counter("pitwall.poller.fetches",
		metric.WithDescription("Number of snapshot fetches"),
		metric.WithUnit("{count}"))
	if err != nil {
		p.log.Error("failed to register metric", log.ErrorField(err))
	}
}

func (p *Poller) count(ctx context.Context, res string) {
	if p.fetches != nil {
		p.fetches.Add(ctx, 1, metric.WithAttributes(attribute.String("result", res)))
	}
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run polls the room until ctx is done. Fetch errors are logged and the
// next tick tries again. deliver is called on the polling goroutine.
func (p *Poller) Run(ctx context.Context, room string, gen uint64, deliver func(PollResult)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	p.log.Debug("start polling", log.String("room", room), log.Uint64("generation", gen))
	for {
		select {
		case <-ctx.Done():
			p.log.Debug("stop polling", log.String("room", room), log.Uint64("generation", gen))
			return
		case <-ticker.C:
			snap, err := p.transport.Fetch(ctx, room)
			switch {
			case err == nil:
				p.count(ctx, "ok")
				deliver(PollResult{Room: room, Generation: gen, Snapshot: snap})
			case errors.Is(err, context.Canceled):
				return
			case errors.Is(err, ErrRoomNotFound):
				p.count(ctx, "not_found")
				p.log.Debug("room not found", log.String("room", room))
			case errors.Is(err, ErrMalformedSnapshot):
				p.count(ctx, "malformed")
			default:
				p.count(ctx, "error")
				p.log.Warn("could not fetch snapshot",
					log.String("room", room), log.ErrorField(err))
			}
		}
	}
}
