package commands

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haystack-go/hscore/config"
	"github.com/haystack-go/hscore/db"
	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/logger"
)

var dbPathFlag string

// DbCmd manages the SQLite database backing the SQL grid provider.
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: logger.SymbolDB + " Manage the hscore database",
	Long: logger.SymbolDB + ` db — Manage the database backing the SQL grid provider.

Examples:
  hscore db migrate                 # Apply pending migrations to the default database
  hscore db migrate --path grid.db  # Apply pending migrations to a specific file
  hscore db stats                   # Show table counts for the default database`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runDbMigrate,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show row counts for the entities tables",
	RunE:  runDbStats,
}

func init() {
	DbCmd.PersistentFlags().StringVar(&dbPathFlag, "path", "", "database file path (default: from config)")
	DbCmd.AddCommand(dbMigrateCmd)
	DbCmd.AddCommand(dbStatsCmd)
}

// openDatabase resolves the database path from --path or config, opens the
// connection, and runs migrations so callers always see a current schema.
func openDatabase() (*sql.DB, string, error) {
	path := dbPathFlag
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, "", errors.Wrap(err, "load config")
		}
		path = cfg.GetDatabasePath()
	}

	conn, err := db.OpenWithMigrations(path, logger.Logger)
	if err != nil {
		return nil, "", errors.Wrapf(err, "open database at %s", path)
	}
	return conn, path, nil
}

func runDbMigrate(cmd *cobra.Command, args []string) error {
	conn, path, err := openDatabase()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("%s database up to date: %s\n", logger.SymbolDB, path)
	return nil
}

func runDbStats(cmd *cobra.Command, args []string) error {
	conn, path, err := openDatabase()
	if err != nil {
		return err
	}
	defer conn.Close()

	var entityCount, metaCount, tsCount int
	if err := conn.QueryRow("SELECT COUNT(*) FROM entities").Scan(&entityCount); err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "count entities")
	}
	if err := conn.QueryRow("SELECT COUNT(*) FROM entities_meta_datas").Scan(&metaCount); err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "count entities_meta_datas")
	}
	if err := conn.QueryRow("SELECT COUNT(*) FROM entities_ts").Scan(&tsCount); err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "count entities_ts")
	}

	fmt.Printf("%s Database Statistics\n", logger.SymbolDB)
	fmt.Printf("Path:     %s\n", path)
	fmt.Printf("Entities: %d\n", entityCount)
	fmt.Printf("Meta:     %d\n", metaCount)
	fmt.Printf("Series:   %d\n", tsCount)
	return nil
}
