package main

import (
	"github.com/jnowat/SteloPTC/internal/store"
	"github.com/jnowat/SteloPTC/internal/util"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database health and record counts",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	schemaVersion, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	util.InfoLog("Database: %s", db.Path())
	util.InfoLog("SQLite:   %s", store.SQLiteVersion())
	util.InfoLog("Schema:   version %d", schemaVersion)

	if err := db.CheckIntegrity(); err != nil {
		util.ErrorLog("Integrity check failed: %v", err)
		return err
	}
	util.SuccessLog("Integrity check passed")

	stats, err := db.SpecimenStats()
	if err != nil {
		return err
	}
	util.InfoLog("Specimens: %d total, %d active, %d quarantined, %d archived",
		stats.TotalSpecimens, stats.ActiveSpecimens, stats.Quarantined, stats.Archived)
	util.InfoLog("Subcultures in last 30 days: %d", stats.RecentSubcultures)

	return nil
}
