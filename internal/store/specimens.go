package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/query"
	"github.com/jnowat/SteloPTC/internal/util"
)

const specimenSelect = `
	SELECT s.id, s.accession_number, s.species_id, sp.species_code,
	       sp.genus || ' ' || sp.species_name, s.project_id, p.name,
	       s.stage, s.custom_stage, s.provenance, s.source_plant, s.initiation_date,
	       s.location, s.location_details, s.propagation_method, s.acclimatization_status,
	       s.health_status, s.disease_status, s.quarantine_flag, s.quarantine_release_date,
	       s.permit_number, s.permit_expiry, s.ip_flag, s.ip_notes, s.environmental_notes,
	       s.subculture_count, s.parent_specimen_id, s.qr_code_data, s.notes, s.employee_id,
	       s.is_archived, s.archived_at, s.created_by, s.created_at, s.updated_at
	FROM specimens s
	JOIN species sp ON sp.id = s.species_id
	LEFT JOIN projects p ON p.id = s.project_id
`

func scanSpecimen(row interface{ Scan(...any) error }) (*model.Specimen, error) {
	sp := &model.Specimen{}
	err := row.Scan(
		&sp.ID, &sp.AccessionNumber, &sp.SpeciesID, &sp.SpeciesCode,
		&sp.SpeciesName, &sp.ProjectID, &sp.ProjectName,
		&sp.Stage, &sp.CustomStage, &sp.Provenance, &sp.SourcePlant, &sp.InitiationDate,
		&sp.Location, &sp.LocationDetails, &sp.PropagationMethod, &sp.AcclimatizationStatus,
		&sp.HealthStatus, &sp.DiseaseStatus, &sp.QuarantineFlag, &sp.QuarantineReleaseDate,
		&sp.PermitNumber, &sp.PermitExpiry, &sp.IPFlag, &sp.IPNotes, &sp.EnvironmentalNotes,
		&sp.SubcultureCount, &sp.ParentSpecimenID, &sp.QRCodeData, &sp.Notes, &sp.EmployeeID,
		&sp.IsArchived, &sp.ArchivedAt, &sp.CreatedBy, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sp, nil
}

// NextAccession generates the next accession number for the given
// initiation date and species code. Format: <date>-<code>-<NNN>, where the
// sequence counts existing accessions with the same prefix.
func (s *Store) NextAccession(initiationDate, speciesCode string) (string, error) {
	prefix := fmt.Sprintf("%s-%s-", initiationDate, speciesCode)

	var count int64
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM specimens WHERE accession_number LIKE ?", prefix+"%",
	).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("failed to count accessions: %w", err)
	}

	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}

// CreateSpecimen inserts a specimen with a freshly generated accession
// number and returns the stored row.
func (s *Store) CreateSpecimen(req *model.CreateSpecimenRequest, createdBy *string) (*model.Specimen, error) {
	species, err := s.GetSpecies(req.SpeciesID)
	if err != nil {
		return nil, err
	}
	if species == nil {
		return nil, fmt.Errorf("%w: species %s", util.ErrNotFound, req.SpeciesID)
	}

	accession, err := s.NextAccession(req.InitiationDate, species.SpeciesCode)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	quarantine := req.QuarantineFlag != nil && *req.QuarantineFlag
	ip := req.IPFlag != nil && *req.IPFlag

	_, err = s.db.Exec(`
		INSERT INTO specimens (
			id, accession_number, species_id, project_id, stage, custom_stage,
			provenance, source_plant, initiation_date, location, location_details,
			propagation_method, acclimatization_status, health_status, disease_status,
			quarantine_flag, permit_number, permit_expiry, ip_flag, ip_notes,
			environmental_notes, parent_specimen_id, notes, employee_id, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, 'healthy'), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, accession, req.SpeciesID, req.ProjectID, req.Stage, req.CustomStage,
		req.Provenance, req.SourcePlant, req.InitiationDate, req.Location, req.LocationDetails,
		req.PropagationMethod, req.AcclimatizationStatus, req.HealthStatus, req.DiseaseStatus,
		quarantine, req.PermitNumber, req.PermitExpiry, ip, req.IPNotes,
		req.EnvironmentalNotes, req.ParentSpecimenID, req.Notes, req.EmployeeID, createdBy)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create specimen: %v", util.ErrConstraint, err)
	}

	return s.GetSpecimen(id)
}

// GetSpecimen retrieves a specimen by id, or nil when absent
func (s *Store) GetSpecimen(id string) (*model.Specimen, error) {
	sp, err := scanSpecimen(s.db.QueryRow(specimenSelect+"WHERE s.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get specimen: %w", err)
	}
	return sp, nil
}

// GetSpecimenByAccession retrieves a specimen by accession number
func (s *Store) GetSpecimenByAccession(accession string) (*model.Specimen, error) {
	sp, err := scanSpecimen(s.db.QueryRow(specimenSelect+"WHERE s.accession_number = ?", accession))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get specimen: %w", err)
	}
	return sp, nil
}

// SearchSpecimens returns a filtered, paginated page of specimens. The
// count and fetch share the same predicates so totals always agree with
// the rows returned.
func (s *Store) SearchSpecimens(params *model.SpecimenSearchParams) (*model.Paginated[model.Specimen], error) {
	var w query.Where

	if params.Query != nil && *params.Query != "" {
		q := "%" + *params.Query + "%"
		w.Add("(s.accession_number LIKE ? OR s.notes LIKE ? OR s.location LIKE ?)", q, q, q)
	}
	if params.SpeciesID != nil {
		w.Eq("s.species_id", *params.SpeciesID)
	}
	if params.Stage != nil {
		w.Eq("s.stage", *params.Stage)
	}
	if params.ProjectID != nil {
		w.Eq("s.project_id", *params.ProjectID)
	}
	if params.QuarantineOnly != nil && *params.QuarantineOnly {
		w.Add("s.quarantine_flag = 1")
	}
	if params.Archived != nil && *params.Archived {
		w.Add("s.is_archived = 1")
	} else {
		w.Add("s.is_archived = 0")
	}

	var total int64
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM specimens s JOIN species sp ON sp.id = s.species_id "+w.Clause(),
		w.Args()...,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count specimens: %w", err)
	}

	pg := query.NewPagination(params.Page, params.PerPage)
	pages, err := pg.Pages(total)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		specimenSelect+w.Clause()+" ORDER BY s.accession_number LIMIT ? OFFSET ?",
		w.Args(pg.Limit(), pg.Offset())...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query specimens: %w", err)
	}
	defer rows.Close()

	items := []model.Specimen{}
	for rows.Next() {
		sp, err := scanSpecimen(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan specimen: %w", err)
		}
		items = append(items, *sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.Paginated[model.Specimen]{
		Items:      items,
		Total:      total,
		Page:       pg.Page,
		PerPage:    pg.PerPage,
		TotalPages: pages,
	}, nil
}

// ListActiveSpecimens returns all unarchived specimens in accession order.
// Used by exports, which never paginate.
func (s *Store) ListActiveSpecimens() ([]model.Specimen, error) {
	rows, err := s.db.Query(specimenSelect + "WHERE s.is_archived = 0 ORDER BY s.accession_number")
	if err != nil {
		return nil, fmt.Errorf("failed to query specimens: %w", err)
	}
	defer rows.Close()

	var list []model.Specimen
	for rows.Next() {
		sp, err := scanSpecimen(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan specimen: %w", err)
		}
		list = append(list, *sp)
	}
	return list, rows.Err()
}

// UpdateSpecimen applies a partial update. The accession number and
// initiation date are immutable once assigned.
func (s *Store) UpdateSpecimen(req *model.UpdateSpecimenRequest) error {
	var u query.Update
	query.SetIf(&u, "stage", req.Stage)
	query.SetIf(&u, "custom_stage", req.CustomStage)
	query.SetIf(&u, "location", req.Location)
	query.SetIf(&u, "location_details", req.LocationDetails)
	query.SetIf(&u, "propagation_method", req.PropagationMethod)
	query.SetIf(&u, "acclimatization_status", req.AcclimatizationStatus)
	query.SetIf(&u, "health_status", req.HealthStatus)
	query.SetIf(&u, "disease_status", req.DiseaseStatus)
	query.SetIf(&u, "quarantine_flag", req.QuarantineFlag)
	query.SetIf(&u, "quarantine_release_date", req.QuarantineReleaseDate)
	query.SetIf(&u, "permit_number", req.PermitNumber)
	query.SetIf(&u, "permit_expiry", req.PermitExpiry)
	query.SetIf(&u, "ip_flag", req.IPFlag)
	query.SetIf(&u, "ip_notes", req.IPNotes)
	query.SetIf(&u, "environmental_notes", req.EnvironmentalNotes)
	query.SetIf(&u, "notes", req.Notes)

	clause, args, err := u.Clause(req.ID)
	if err != nil {
		return err
	}

	res, err := s.db.Exec("UPDATE specimens "+clause+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update specimen: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ArchiveSpecimen soft-deletes a specimen. The row and its history remain
// queryable; only is_archived flips.
func (s *Store) ArchiveSpecimen(id string) error {
	res, err := s.db.Exec(`
		UPDATE specimens
		SET is_archived = 1, archived_at = datetime('now'), updated_at = datetime('now')
		WHERE id = ? AND is_archived = 0
	`, id)
	if err != nil {
		return fmt.Errorf("failed to archive specimen: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}

// SpecimenStats aggregates counts for the dashboard
func (s *Store) SpecimenStats() (*model.SpecimenStats, error) {
	stats := &model.SpecimenStats{}

	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN is_archived = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN quarantine_flag = 1 AND is_archived = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN is_archived = 1 THEN 1 ELSE 0 END), 0)
		FROM specimens
	`).Scan(&stats.TotalSpecimens, &stats.ActiveSpecimens, &stats.Quarantined, &stats.Archived)
	if err != nil {
		return nil, fmt.Errorf("failed to count specimens: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT stage, COUNT(*) FROM specimens WHERE is_archived = 0 GROUP BY stage ORDER BY stage
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count stages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc model.StageCount
		if err := rows.Scan(&sc.Stage, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan stage count: %w", err)
		}
		stats.ByStage = append(stats.ByStage, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	spRows, err := s.db.Query(`
		SELECT sp.species_code, COUNT(*)
		FROM specimens s
		JOIN species sp ON sp.id = s.species_id
		WHERE s.is_archived = 0
		GROUP BY sp.species_code
		ORDER BY sp.species_code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count species: %w", err)
	}
	defer spRows.Close()
	for spRows.Next() {
		var sc model.SpeciesCount
		if err := spRows.Scan(&sc.SpeciesCode, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan species count: %w", err)
		}
		stats.BySpecies = append(stats.BySpecies, sc)
	}
	if err := spRows.Err(); err != nil {
		return nil, err
	}

	err = s.db.QueryRow(`
		SELECT COUNT(*) FROM subcultures WHERE date >= date('now', '-30 days')
	`).Scan(&stats.RecentSubcultures)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent subcultures: %w", err)
	}

	return stats, nil
}
