package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jnowat/SteloPTC/internal/util"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create and list database backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create [destination]",
	Short: "Checkpoint the WAL and copy the database file",
	Long: `Create checkpoints the write-ahead log and copies the database file.

Without arguments the copy lands in the backups directory beside the
database. A destination argument may be a directory or a full file path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing backups, newest first",
	RunE:  runBackupList,
}

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var destination *string
	if len(args) == 1 {
		destination = &args[0]
	}

	path, err := db.Backup(destination)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	util.SuccessLog("Backup written: %s", path)
	return nil
}

func runBackupList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	backups, err := db.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		util.InfoLog("No backups in %s", db.BackupDir())
		return nil
	}

	for _, b := range backups {
		fmt.Printf("%s  %8s  %s\n", b.CreatedAt, humanize.Bytes(uint64(b.SizeBytes)), b.FileName)
	}
	return nil
}
