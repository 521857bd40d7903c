package migrate

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/cmd/util"
	"github.com/mpapenbr/pitwall-go/pkg/config"
	dbmigrate "github.com/mpapenbr/pitwall-go/pkg/db/migrate"
	"github.com/mpapenbr/pitwall-go/pkg/utils"
)

var dropAll bool

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration of the session store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration()
		},
	}
	cmd.Flags().BoolVar(&dropAll,
		"drop-all",
		false,
		"reverts all migrations instead of applying them")
	return cmd
}

func startMigration() error {
	util.SetupLogger()
	// wait for database
	timeout := util.ParseDuration(config.WaitForServices, 60*time.Second)
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err := utils.WaitForTCP(postgresAddr, timeout); err != nil {
		log.Fatal("database not ready", log.ErrorField(err))
	}

	dbURL := prepareURLForDB(config.DB)
	if dropAll {
		log.Info("Reverting all migrations")
		return dbmigrate.DropAll(dbURL)
	}
	if err := dbmigrate.MigrateDb(dbURL); err != nil {
		return err
	}
	version, dirty, err := dbmigrate.Version(dbURL)
	if err != nil {
		return err
	}
	log.Info("Database migrated", log.Int("version", int(version)), log.Bool("dirty", dirty))
	return nil
}

func prepareURLForDB(url string) string {
	options := "sslmode=disable"
	if strings.Contains(url, "sslmode=") {
		return url
	}
	if strings.Contains(url, "?") {
		return fmt.Sprintf("%s&%s", url, options)
	}
	return fmt.Sprintf("%s?%s", url, options)
}
