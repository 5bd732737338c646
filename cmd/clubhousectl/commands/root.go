package commands

import (
	"fmt"
	"os"

	"github.com/clubhousefc/backend/pkg/config"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clubhousectl",
	Short: "Operational tooling for the ClubHouse FC backend",
	Long: `clubhousectl manages the ClubHouse FC database.

Commands:
  migrate  - Create or update the schema
  seed     - Insert founding members and optional generated activity`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Postgres connection string (defaults to POSTGRES_CONN_STR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log SQL statements")
}

func openDB() (*gorm.DB, error) {
	url := dbURL
	if url == "" {
		url = config.Load().PostgresConnStr
	}
	if url == "" {
		return nil, fmt.Errorf("no database: pass --db or set POSTGRES_CONN_STR")
	}
	return config.OpenPostgres(url, nil, verbose)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
