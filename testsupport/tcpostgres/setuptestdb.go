//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpapenbr/pitwall-go/pkg/db/migrate"
	database "github.com/mpapenbr/pitwall-go/pkg/db/postgres"
)

// SetupTestDb returns a migrated pool on the shared pitwall test container
func SetupTestDb() *pgxpool.Pool {
	c, err := SetupPostgres(context.Background(), WithName("pitwall-test"))
	if err != nil {
		log.Fatal(err)
	}
	return migratedPool(c.URL)
}

// SetupExternalTestDb uses the database referenced by TESTDB_URL
func SetupExternalTestDb() *pgxpool.Pool {
	return migratedPool(os.Getenv("TESTDB_URL"))
}

func migratedPool(dbURL string) *pgxpool.Pool {
	if err := migrate.MigrateDb(dbURL); err != nil {
		log.Fatal(err)
	}
	pool, err := database.InitWithUrl(context.Background(), dbURL)
	if err != nil {
		log.Fatal(err)
	}
	return pool
}

// ClearAllTables removes all rows written by tests
func ClearAllTables(pool *pgxpool.Pool) {
	for _, table := range []string{"game_snapshot"} {
		pool.Exec(context.Background(), "delete from "+table)
	}
}
