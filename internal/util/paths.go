package util

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the per-user application data directory for the lab
// database and its backups. The directory is not created here.
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "SteloPTC")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".steloptc")
}

// DefaultDBPath returns the default location of the database file.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "stelo_ptc.db")
}
