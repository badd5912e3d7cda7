package main

import (
	"fmt"
	"os"

	"github.com/jnowat/SteloPTC/internal/store"
	"github.com/jnowat/SteloPTC/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	rootCmd = &cobra.Command{
		Use:   "steloptc",
		Short: "SteloPTC - plant tissue culture lab records",
		Long: `steloptc is the records backend for a plant tissue culture lab.
It keeps specimens, subcultures, media batches, inventory, reminders and
compliance records in a local SQLite database and serves them to the
desktop UI over a JSON command loop.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("db", util.DefaultDBPath(), "database file")
	rootCmd.PersistentFlags().Bool("memory", false, "use an in-memory database (data is lost on exit)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("memory", rootCmd.PersistentFlags().Lookup("memory"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	// Read in environment variables that match
	viper.SetEnvPrefix("STELO")
	viper.AutomaticEnv()

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))
}

// openStore opens the configured database, running any pending
// migrations on the way.
func openStore() (*store.Store, error) {
	if viper.GetBool("memory") {
		util.WarnLog("Using an in-memory database, nothing will be persisted")
		return store.OpenMemory()
	}

	dbPath := viper.GetString("db")
	if dbPath == util.DefaultDBPath() {
		if err := os.MkdirAll(util.DataDir(), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	util.DebugLog("Opening database: %s", dbPath)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
