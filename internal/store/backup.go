package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/util"
)

const backupPrefix = "stelo_ptc_backup_"

// BackupDir returns the directory backups are written to, beside the
// database file.
func (s *Store) BackupDir() string {
	if s.path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(s.path), "backups")
}

// Backup checkpoints the WAL and copies the database file. With a nil
// destination the copy lands in BackupDir under a timestamped name; an
// explicit destination may be a directory or a full file path. Returns
// the path written.
func (s *Store) Backup(destination *string) (string, error) {
	if s.path == "" {
		return "", fmt.Errorf("%w: in-memory database has no file to back up", util.ErrStorage)
	}

	if err := s.Checkpoint(); err != nil {
		return "", err
	}

	name := backupPrefix + time.Now().Format("20060102_150405") + ".db"

	var target string
	if destination != nil {
		info, err := os.Stat(*destination)
		if err == nil && info.IsDir() {
			target = filepath.Join(*destination, name)
		} else {
			target = *destination
		}
	} else {
		dir := s.BackupDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create backup directory: %w", err)
		}
		target = filepath.Join(dir, name)
	}

	if err := copyFile(s.path, target); err != nil {
		return "", err
	}
	return target, nil
}

// ListBackups lists the backup files in BackupDir, newest first
func (s *Store) ListBackups() ([]model.BackupInfo, error) {
	dir := s.BackupDir()
	if dir == "" {
		return []model.BackupInfo{}, nil
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []model.BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []model.BackupInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, ".db") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, model.BackupInfo{
			FileName:  name,
			Path:      filepath.Join(dir, name),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime().UTC().Format("2006-01-02 15:04:05"),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].FileName > backups[j].FileName
	})
	return backups, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open database file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy database: %w", err)
	}
	return out.Sync()
}
