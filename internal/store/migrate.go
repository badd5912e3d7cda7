package store

import (
	"fmt"

	"github.com/jnowat/SteloPTC/internal/util"
)

type migrationKind int

const (
	// additive migrations only create tables, indexes, or columns
	additive migrationKind = iota
	// rebuild migrations recreate a table and must run with foreign key
	// enforcement suspended
	rebuild
)

type migration struct {
	version int
	name    string
	kind    migrationKind
	apply   func(s *Store) error
}

var migrations = []migration{
	{1, "initial schema", additive, func(s *Store) error {
		_, err := s.db.Exec(schemaV1)
		return err
	}},
	{2, "specimen stages, prepared solutions", rebuild, func(s *Store) error {
		if _, err := s.db.Exec(schemaV2Rebuild); err != nil {
			return err
		}
		_, err := s.db.Exec(schemaV2Additive)
		return err
	}},
	{3, "error logs", additive, func(s *Store) error {
		_, err := s.db.Exec(schemaV3)
		return err
	}},
}

// Migrate brings the database schema up to the latest version. Applied
// versions are recorded in schema_version; re-running is a no-op.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return fmt.Errorf("%w: failed to create schema_version: %v", util.ErrMigration, err)
	}

	version, err := s.SchemaVersion()
	if err != nil {
		return fmt.Errorf("%w: failed to read schema version: %v", util.ErrMigration, err)
	}

	for _, m := range migrations {
		if version >= m.version {
			continue
		}

		util.DebugLog("applying migration %d: %s", m.version, m.name)
		if err := s.applyMigration(m); err != nil {
			return fmt.Errorf("%w: migration %d (%s): %v", util.ErrMigration, m.version, m.name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("%w: failed to record version %d: %v", util.ErrMigration, m.version, err)
		}
	}

	return nil
}

// applyMigration runs one migration step. Rebuild migrations toggle
// PRAGMA foreign_keys off around the table recreation; the pragma is a
// no-op inside a transaction, so rebuilds run on the raw connection.
func (s *Store) applyMigration(m migration) error {
	if m.kind != rebuild {
		return m.apply(s)
	}

	if _, err := s.db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("failed to disable foreign keys: %w", err)
	}
	defer s.db.Exec("PRAGMA foreign_keys = ON")

	return m.apply(s)
}

// SchemaVersion returns the highest applied schema version
func (s *Store) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}
