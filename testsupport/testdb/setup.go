package testdb

import (
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	tcpg "github.com/mpapenbr/pitwall-go/testsupport/tcpostgres"
)

// ContainerTestsEnabled reports if tests needing docker should run
func ContainerTestsEnabled() bool {
	return os.Getenv("PITWALL_CONTAINER_TESTS") != "" || os.Getenv("TESTDB_URL") != ""
}

// InitTestDb returns a pool to an empty, migrated database.
// The test is skipped unless container tests are enabled.
func InitTestDb(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if !ContainerTestsEnabled() {
		t.Skip("set PITWALL_CONTAINER_TESTS to run database tests")
	}
	var pool *pgxpool.Pool
	if os.Getenv("TESTDB_URL") != "" {
		pool = tcpg.SetupExternalTestDb()
	} else {
		pool = tcpg.SetupTestDb()
	}
	tcpg.ClearAllTables(pool)
	return pool
}
