package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jnowat/SteloPTC/internal/model"
)

// ExportSpecimen is the flattened projection written by the specimen
// exports.
type ExportSpecimen struct {
	AccessionNumber string  `json:"accession_number"`
	SpeciesCode     string  `json:"species_code"`
	SpeciesName     string  `json:"species_name"`
	Stage           string  `json:"stage"`
	Provenance      *string `json:"provenance"`
	InitiationDate  string  `json:"initiation_date"`
	Location        *string `json:"location"`
	HealthStatus    *string `json:"health_status"`
	QuarantineFlag  bool    `json:"quarantine_flag"`
	SubcultureCount int     `json:"subculture_count"`
	Notes           *string `json:"notes"`
}

// SpecimenCSVHeader returns the export column headers
func SpecimenCSVHeader() []string {
	return []string{"Accession", "Species Code", "Species", "Stage", "Provenance",
		"Initiation Date", "Location", "Health Status", "Quarantine", "Subculture Count", "Notes"}
}

// SpecimenCSVRecord flattens one specimen into an export row
func SpecimenCSVRecord(sp *model.Specimen) []string {
	quarantine := "No"
	if sp.QuarantineFlag {
		quarantine = "Yes"
	}
	return []string{
		sp.AccessionNumber,
		strOrEmpty(sp.SpeciesCode),
		strOrEmpty(sp.SpeciesName),
		sp.Stage,
		strOrEmpty(sp.Provenance),
		sp.InitiationDate,
		strOrEmpty(sp.Location),
		strOrEmpty(sp.HealthStatus),
		quarantine,
		strconv.Itoa(sp.SubcultureCount),
		strOrEmpty(sp.Notes),
	}
}

// SpecimenExportRows flattens specimens for the JSON export
func SpecimenExportRows(specimens []model.Specimen) []ExportSpecimen {
	rows := make([]ExportSpecimen, 0, len(specimens))
	for i := range specimens {
		sp := &specimens[i]
		rows = append(rows, ExportSpecimen{
			AccessionNumber: sp.AccessionNumber,
			SpeciesCode:     strOrEmpty(sp.SpeciesCode),
			SpeciesName:     strOrEmpty(sp.SpeciesName),
			Stage:           sp.Stage,
			Provenance:      sp.Provenance,
			InitiationDate:  sp.InitiationDate,
			Location:        sp.Location,
			HealthStatus:    sp.HealthStatus,
			QuarantineFlag:  sp.QuarantineFlag,
			SubcultureCount: sp.SubcultureCount,
			Notes:           sp.Notes,
		})
	}
	return rows
}

// ExportSpecimensCSV renders all unarchived specimens as CSV.
// Any valid session may export; the data is read-only.
func (a *App) ExportSpecimensCSV(token string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return "", err
	}

	specimens, err := a.store.ListActiveSpecimens()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(SpecimenCSVHeader())
	for i := range specimens {
		w.Write(SpecimenCSVRecord(&specimens[i]))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.String(), nil
}

// ExportSpecimensJSON renders all unarchived specimens as indented JSON
func (a *App) ExportSpecimensJSON(token string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return "", err
	}

	specimens, err := a.store.ListActiveSpecimens()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(SpecimenExportRows(specimens), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal specimens: %w", err)
	}
	return string(data), nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
