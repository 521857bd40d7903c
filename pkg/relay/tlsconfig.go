package relay

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/utils/certs/traefik"
)

// TLSFiles names the sources of the server certificate. A traefik acme file
// takes precedence over cert/key files.
type TLSFiles struct {
	CertFile      string
	KeyFile       string
	CAFile        string
	TraefikCerts  string
	TraefikDomain string
}

type certs struct {
	ctx   context.Context
	files TLSFiles
	log   *log.Logger
	cert  *tls.Certificate
	mu    sync.RWMutex
}

// NewTLSConfig returns nil if no certificate could be loaded. The
// certificate is reloaded when one of its files changes.
func NewTLSConfig(ctx context.Context, files TLSFiles) *tls.Config {
	c := &certs{
		ctx:   ctx,
		files: files,
		log:   log.Default().Named("relay.certs"),
	}
	c.loadCert()
	if c.cert == nil {
		return nil
	}
	cfg := &tls.Config{
		GetCertificate: func(chi *tls.ClientHelloInfo) (*tls.Certificate, error) {
			c.mu.RLock()
			defer c.mu.RUnlock()
			return c.cert, nil
		},
		MinVersion: tls.VersionTLS13,
	}
	if files.CAFile != "" {
		c.log.Info("Loading ca cert", log.String("file", files.CAFile))
		caCert, err := os.ReadFile(files.CAFile)
		if err != nil {
			c.log.Error("could not read TLS root CA", log.ErrorField(err))
		}
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
			c.log.Error("could not append cert to pool")
		}
		cfg.ClientCAs = caCertPool
		cfg.ClientAuth = tls.VerifyClientCertIfGiven
	}
	go c.watchAndReloadCerts()
	return cfg
}

func (c *certs) watchAndReloadCerts() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		c.log.Error("could not create fsnotify watcher", log.ErrorField(err))
		return
	}
	defer watcher.Close()
	for _, f := range []string{c.files.CertFile, c.files.KeyFile, c.files.TraefikCerts} {
		if f == "" {
			continue
		}
		if err := watcher.Add(f); err != nil {
			c.log.Error("could not watch file", log.String("file", f), log.ErrorField(err))
		}
	}
	for {
		select {
		case <-c.ctx.Done():
			c.log.Debug("context done, stopping cert reload")
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Chmod|fsnotify.Create) != 0 {
				c.log.Info("cert file changed, reloading cert", log.String("file", event.Name))
				c.loadCert()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.log.Error("watcher error", log.ErrorField(err))
		}
	}
}

func (c *certs) loadCert() {
	var (
		cert tls.Certificate
		err  error
	)
	switch {
	case c.files.TraefikCerts != "" && c.files.TraefikDomain != "":
		c.log.Info("Looking up traefik certs",
			log.String("file", c.files.TraefikCerts),
			log.String("domain", c.files.TraefikDomain))
		cert, err = traefik.LoadCertificate(c.files.TraefikCerts, c.files.TraefikDomain)
	case c.files.CertFile != "" && c.files.KeyFile != "":
		c.log.Info("Loading cert",
			log.String("key", c.files.KeyFile),
			log.String("cert", c.files.CertFile))
		cert, err = tls.LoadX509KeyPair(c.files.CertFile, c.files.KeyFile)
	default:
		return
	}
	if err != nil {
		c.log.Error("could not load certificate", log.ErrorField(err))
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cert = &cert
}
