package main

import (
	"fmt"

	"github.com/jnowat/SteloPTC/internal/util"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Migrate brings the database schema up to the current version.

Opening the database already applies pending migrations, so this command
exists to run them explicitly, for example before taking a backup of a
database created by an older release.`,
	RunE: runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed default data into empty tables",
	Long: `Seed inserts the default admin account, the species master list and
the tag taxonomy, each only when its table is empty. Safe to re-run.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CheckIntegrity(); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}

	util.SuccessLog("Database is up to date: %s", db.Path())
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Seed(); err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}

	util.SuccessLog("Defaults seeded (existing rows untouched)")
	return nil
}
