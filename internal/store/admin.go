package store

import (
	"database/sql"
	"fmt"
)

// resetTables are cleared by ResetOperationalData, in dependency order.
// Users, species, and tags survive a reset.
var resetTables = []string{
	"media_hormones",
	"subcultures",
	"specimen_tags",
	"compliance_records",
	"reminders",
	"attachments",
	"prepared_solutions",
	"specimens",
	"media_batches",
	"inventory_items",
	"error_logs",
	"audit_log",
}

// ResetOperationalData wipes all operational records while preserving user
// accounts, species definitions, and the tag taxonomy. Runs in one
// transaction so a failure leaves everything intact.
func (s *Store) ResetOperationalData() error {
	return s.Transaction(func(tx *sql.Tx) error {
		for _, table := range resetTables {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}
