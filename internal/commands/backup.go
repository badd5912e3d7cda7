package commands

import (
	"github.com/jnowat/SteloPTC/internal/model"
)

// CreateBackup copies the database into the backups directory beside it.
// Managing roles only. Fails for in-memory databases, which have no file
// to copy.
func (a *App) CreateBackup(token string, destination *string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireManage(token)
	if err != nil {
		return "", err
	}

	path, err := a.store.Backup(destination)
	if err != nil {
		return "", err
	}

	a.audit.Record(&user.ID, "create", "backup", nil, nil, &path,
		ptr("Database backup created"))
	return path, nil
}

// ListBackups lists the backup files beside the database, newest first
func (a *App) ListBackups(token string) ([]model.BackupInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.ListBackups()
}
