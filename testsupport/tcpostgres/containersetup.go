package tcpostgres

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultImage = "postgres:15"
	pgPort       = "5432"
)

// PostgresContainer is a running postgres with the url of its initial database
type PostgresContainer struct {
	testcontainers.Container
	URL string
}

type containerConfig struct {
	image    string
	name     string
	user     string
	password string
	dbName   string
	ready    wait.Strategy
}

type Option func(cfg *containerConfig)

// WithImage overrides the postgres image. PITWALL_TEST_PG_IMAGE is used if
// set and no image is given.
func WithImage(image string) Option {
	return func(cfg *containerConfig) { cfg.image = image }
}

// WithName names the container. Named containers are reused between runs.
func WithName(name string) Option {
	return func(cfg *containerConfig) { cfg.name = name }
}

func WithCredentials(user, password, dbName string) Option {
	return func(cfg *containerConfig) {
		cfg.user = user
		cfg.password = password
		cfg.dbName = dbName
	}
}

func WithReadyStrategy(s wait.Strategy) Option {
	return func(cfg *containerConfig) { cfg.ready = s }
}

// SetupPostgres starts (or reuses) a postgres container
func SetupPostgres(ctx context.Context, opts ...Option) (*PostgresContainer, error) {
	cfg := containerConfig{
		image:    os.Getenv("PITWALL_TEST_PG_IMAGE"),
		user:     "postgres",
		password: "password",
		dbName:   "postgres",
		ready: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.image == "" {
		cfg.image = defaultImage
	}
	port, err := nat.NewPort("tcp", pgPort)
	if err != nil {
		return nil, err
	}
	req := testcontainers.ContainerRequest{
		Image: cfg.image,
		Name:  cfg.name,
		Env: map[string]string{
			"POSTGRES_USER":     cfg.user,
			"POSTGRES_PASSWORD": cfg.password,
			"POSTGRES_DB":       cfg.dbName,
		},
		ExposedPorts: []string{string(port)},
		// test data is disposable
		Cmd:        []string{"postgres", "-c", "fsync=off"},
		WaitingFor: wait.ForAll(cfg.ready).WithDeadline(time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
			Reuse:            cfg.name != "",
		})
	if err != nil {
		return nil, err
	}
	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		return nil, err
	}
	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	return &PostgresContainer{
		Container: container,
		URL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
			cfg.user, cfg.password, host, mapped.Port(), cfg.dbName),
	}, nil
}
