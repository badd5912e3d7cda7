package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/query"
	"github.com/jnowat/SteloPTC/internal/util"
)

const subcultureSelect = `
	SELECT sc.id, sc.specimen_id, sc.passage_number, sc.date,
	       sc.media_batch_id, mb.name,
	       sc.ph, sc.temperature_c, sc.light_cycle, sc.light_intensity_lux,
	       sc.experimental_treatment, sc.vessel_type, sc.vessel_size,
	       sc.vessel_material, sc.vessel_lid_type, sc.location_from, sc.location_to,
	       sc.temp_before, sc.temp_after, sc.humidity_before, sc.humidity_after,
	       sc.light_before, sc.light_after, sc.exposure_duration_hours,
	       sc.notes, sc.observations, sc.performed_by, u.display_name,
	       sc.employee_id, sc.health_status, sc.created_at, sc.updated_at
	FROM subcultures sc
	LEFT JOIN media_batches mb ON mb.id = sc.media_batch_id
	LEFT JOIN users u ON u.id = sc.performed_by
`

func scanSubculture(row interface{ Scan(...any) error }) (*model.Subculture, error) {
	sc := &model.Subculture{}
	err := row.Scan(
		&sc.ID, &sc.SpecimenID, &sc.PassageNumber, &sc.Date,
		&sc.MediaBatchID, &sc.MediaBatchName,
		&sc.PH, &sc.TemperatureC, &sc.LightCycle, &sc.LightIntensityLux,
		&sc.ExperimentalTreatment, &sc.VesselType, &sc.VesselSize,
		&sc.VesselMaterial, &sc.VesselLidType, &sc.LocationFrom, &sc.LocationTo,
		&sc.TempBefore, &sc.TempAfter, &sc.HumidityBefore, &sc.HumidityAfter,
		&sc.LightBefore, &sc.LightAfter, &sc.ExposureDurationHours,
		&sc.Notes, &sc.Observations, &sc.PerformedBy, &sc.PerformerName,
		&sc.EmployeeID, &sc.HealthStatus, &sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// ListSubcultures returns a specimen's passage history in passage order
func (s *Store) ListSubcultures(specimenID string) ([]model.Subculture, error) {
	rows, err := s.db.Query(subcultureSelect+"WHERE sc.specimen_id = ? ORDER BY sc.passage_number", specimenID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subcultures: %w", err)
	}
	defer rows.Close()

	var list []model.Subculture
	for rows.Next() {
		sc, err := scanSubculture(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subculture: %w", err)
		}
		list = append(list, *sc)
	}
	return list, rows.Err()
}

// GetSubculture retrieves one passage record, or nil when absent
func (s *Store) GetSubculture(id string) (*model.Subculture, error) {
	sc, err := scanSubculture(s.db.QueryRow(subcultureSelect+"WHERE sc.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subculture: %w", err)
	}
	return sc, nil
}

// CreateSubculture records a passage event. In one transaction it assigns
// the next passage number, inserts the record, bumps the specimen's
// subculture_count, and moves the specimen when a destination is given.
func (s *Store) CreateSubculture(req *model.CreateSubcultureRequest, performedBy *string) (*model.Subculture, error) {
	id := uuid.NewString()

	err := s.Transaction(func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRow("SELECT COUNT(*) FROM specimens WHERE id = ?", req.SpecimenID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check specimen: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("%w: specimen %s", util.ErrNotFound, req.SpecimenID)
		}

		var passage int
		err = tx.QueryRow(
			"SELECT COALESCE(MAX(passage_number), 0) + 1 FROM subcultures WHERE specimen_id = ?",
			req.SpecimenID,
		).Scan(&passage)
		if err != nil {
			return fmt.Errorf("failed to compute passage number: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO subcultures (
				id, specimen_id, passage_number, date, media_batch_id,
				ph, temperature_c, light_cycle, light_intensity_lux,
				experimental_treatment, vessel_type, vessel_size, vessel_material,
				vessel_lid_type, location_from, location_to,
				temp_before, temp_after, humidity_before, humidity_after,
				light_before, light_after, exposure_duration_hours,
				notes, observations, performed_by, employee_id, health_status
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, req.SpecimenID, passage, req.Date, req.MediaBatchID,
			req.PH, req.TemperatureC, req.LightCycle, req.LightIntensityLux,
			req.ExperimentalTreatment, req.VesselType, req.VesselSize, req.VesselMaterial,
			req.VesselLidType, req.LocationFrom, req.LocationTo,
			req.TempBefore, req.TempAfter, req.HumidityBefore, req.HumidityAfter,
			req.LightBefore, req.LightAfter, req.ExposureDurationHours,
			req.Notes, req.Observations, performedBy, req.EmployeeID, req.HealthStatus)
		if err != nil {
			return fmt.Errorf("failed to insert subculture: %w", err)
		}

		_, err = tx.Exec(`
			UPDATE specimens
			SET subculture_count = subculture_count + 1, updated_at = datetime('now')
			WHERE id = ?
		`, req.SpecimenID)
		if err != nil {
			return fmt.Errorf("failed to bump subculture count: %w", err)
		}

		if req.LocationTo != nil {
			_, err = tx.Exec(
				"UPDATE specimens SET location = ?, updated_at = datetime('now') WHERE id = ?",
				*req.LocationTo, req.SpecimenID)
			if err != nil {
				return fmt.Errorf("failed to move specimen: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetSubculture(id)
}

// UpdateSubculture applies a partial update to a passage record.
// Passage number and specimen binding never change.
func (s *Store) UpdateSubculture(req *model.UpdateSubcultureRequest) error {
	var u query.Update
	query.SetIf(&u, "notes", req.Notes)
	query.SetIf(&u, "observations", req.Observations)
	query.SetIf(&u, "vessel_type", req.VesselType)
	query.SetIf(&u, "location_to", req.LocationTo)

	clause, args, err := u.Clause(req.ID)
	if err != nil {
		return err
	}

	res, err := s.db.Exec("UPDATE subcultures "+clause+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update subculture: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}
