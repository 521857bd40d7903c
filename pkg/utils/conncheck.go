package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/mpapenbr/pitwall-go/log"
)

var ErrNotReachable = errors.New("service not reachable")

const (
	defaultNatsPort = "4222"
	defaultPGPort   = "5432"
)

// waitFor calls probe until it succeeds or timeout is reached
func waitFor(what string, timeout, pause time.Duration, probe func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	start := time.Now()
	log.Debug("waiting for service", log.String("service", what), log.Duration("timeout", timeout))
	for {
		err := probe(ctx)
		if err == nil {
			log.Debug("service available",
				log.String("service", what),
				log.Duration("duration", time.Since(start)))
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s after %v: %w", ErrNotReachable, what, timeout, err)
		case <-time.After(pause):
		}
	}
}

// WaitForTCP waits until addr accepts tcp connections
func WaitForTCP(addr string, timeout time.Duration) error {
	var d net.Dialer
	return waitFor(addr, timeout, 200*time.Millisecond, func(ctx context.Context) error {
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		return conn.Close()
	})
}

// WaitForHTTPResponse waits until the url answers without a server error
func WaitForHTTPResponse(target string, timeout time.Duration) error {
	cli := &http.Client{Timeout: time.Second}
	return waitFor(target, timeout, 500*time.Millisecond, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
		if err != nil {
			return err
		}
		resp, err := cli.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("status %s", resp.Status)
		}
		return nil
	})
}

// hostPort returns host:port of raw if its scheme is one of schemes.
// Returns an empty string otherwise.
func hostPort(raw, defaultPort string, schemes ...string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	for _, s := range schemes {
		if u.Scheme != s {
			continue
		}
		port := u.Port()
		if port == "" {
			port = defaultPort
		}
		return net.JoinHostPort(u.Hostname(), port)
	}
	return ""
}

// ExtractFromNatsURL returns host:port of a nats url, the port defaults to 4222
func ExtractFromNatsURL(natsURL string) string {
	return hostPort(natsURL, defaultNatsPort, "nats", "tls")
}

// ExtractFromDBURL returns host:port of a postgres url, the port defaults to 5432
func ExtractFromDBURL(dbURL string) string {
	return hostPort(dbURL, defaultPGPort, "postgres", "postgresql")
}
