package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB                string // connection string for the database
	WaitForServices   string // duration to wait for other services to be ready
	LogLevel          string // sets the log level (zap log level values)
	SQLLogLevel       string // sets the log level for sql subsystem
	LogFormat         string // text vs json
	LogFilter         string // zapfilter rules, e.g. "*:reconcile.* debug+:*"
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // endpoint for telemetry ("stdout" prints to stdout)
	ProfilingPort     int    // port for profiling
	Channel           string // shared channel type (memory, nats, http)
	NatsURL           string // URL of the NATS server
	NatsBucket        string // JetStream KV bucket name
	RelayURL          string // base URL of the relay server
	PollInterval      string // interval between snapshot fetches
	Store             string // local session store (file, postgres, memory)
	SaveDir           string // directory of the file store
	CatalogFile       string // yaml file replacing the built-in catalog
	Seed              uint64 // seed of the race simulator (0: random)
	RelayAddr         string // listen addr for the relay server
	RelayCacheTTL     string // read cache duration of the relay server
	TLSServerAddr     string // listen addr for the relay server (tls)
	TLSCertFile       string // path to TLS certificate
	TLSKeyFile        string // path to TLS key
	TLSCAFile         string // path to TLS CA
	TraefikCerts      string // path to traefik certs file
	TraefikCertDomain string // the domain to lookup within the traefik certs
)
