package commands

import (
	"fmt"
	"strings"

	"github.com/jnowat/SteloPTC/internal/util"
)

const resetConfirmation = "RESET DATABASE"

// ResetDatabase wipes all operational data while preserving user
// accounts, species definitions, and the tag taxonomy. Admin only, and
// the caller must supply the exact confirmation phrase.
func (a *App) ResetDatabase(token, confirmation string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireAdmin(token)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(confirmation) != resetConfirmation {
		return "", fmt.Errorf("%w: confirmation phrase did not match, type exactly: %s",
			util.ErrPermissionDenied, resetConfirmation)
	}

	if err := a.store.ResetOperationalData(); err != nil {
		return "", err
	}

	// The reset cleared audit_log, so this entry is the first row of the
	// fresh trail.
	a.audit.Record(&user.ID, "reset", "database", nil, nil, nil,
		ptr("Full database reset performed by admin"))

	return "Database reset complete. All specimens, media, subcultures, inventory, " +
		"compliance records, and reminders have been cleared. " +
		"Users and species definitions were preserved.", nil
}
