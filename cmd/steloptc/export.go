package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jnowat/SteloPTC/internal/commands"
	"github.com/jnowat/SteloPTC/internal/util"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export specimen records",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export unarchived specimens as CSV",
	RunE:  runExportCSV,
}

var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Export unarchived specimens as JSON",
	RunE:  runExportJSON,
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportJSONCmd)
	rootCmd.AddCommand(exportCmd)
}

func exportTarget() (*os.File, func(), error) {
	if exportOutput == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	specimens, err := db.ListActiveSpecimens()
	if err != nil {
		return err
	}

	out, closeOut, err := exportTarget()
	if err != nil {
		return err
	}
	defer closeOut()

	var bar *progressbar.ProgressBar
	if exportOutput != "" {
		bar = progressbar.Default(int64(len(specimens)), "exporting")
	}

	w := csv.NewWriter(out)
	w.Write(commands.SpecimenCSVHeader())
	for i := range specimens {
		w.Write(commands.SpecimenCSVRecord(&specimens[i]))
		if bar != nil {
			bar.Add(1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	if exportOutput != "" {
		util.SuccessLog("Exported %d specimens to %s", len(specimens), exportOutput)
	}
	return nil
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	specimens, err := db.ListActiveSpecimens()
	if err != nil {
		return err
	}

	out, closeOut, err := exportTarget()
	if err != nil {
		return err
	}
	defer closeOut()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(commands.SpecimenExportRows(specimens)); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}

	if exportOutput != "" {
		util.SuccessLog("Exported %d specimens to %s", len(specimens), exportOutput)
	}
	return nil
}
