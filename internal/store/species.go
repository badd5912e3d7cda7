package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/query"
	"github.com/jnowat/SteloPTC/internal/util"
)

const speciesColumns = `id, genus, species_name, common_name, species_code, default_subculture_interval_days, notes, created_at, updated_at`

func scanSpecies(row interface{ Scan(...any) error }) (*model.Species, error) {
	sp := &model.Species{}
	err := row.Scan(
		&sp.ID, &sp.Genus, &sp.SpeciesName, &sp.CommonName, &sp.SpeciesCode,
		&sp.DefaultSubcultureIntervalDays, &sp.Notes, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sp, nil
}

// ListSpecies returns the species master list ordered by genus and name
func (s *Store) ListSpecies() ([]model.Species, error) {
	rows, err := s.db.Query("SELECT " + speciesColumns + " FROM species ORDER BY genus, species_name")
	if err != nil {
		return nil, fmt.Errorf("failed to query species: %w", err)
	}
	defer rows.Close()

	var list []model.Species
	for rows.Next() {
		sp, err := scanSpecies(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan species: %w", err)
		}
		list = append(list, *sp)
	}
	return list, rows.Err()
}

// GetSpecies retrieves one species by id, or nil when absent
func (s *Store) GetSpecies(id string) (*model.Species, error) {
	sp, err := scanSpecies(s.db.QueryRow(
		"SELECT "+speciesColumns+" FROM species WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get species: %w", err)
	}
	return sp, nil
}

// CreateSpecies inserts a species entry and returns it
func (s *Store) CreateSpecies(req *model.CreateSpeciesRequest) (*model.Species, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO species (id, genus, species_name, common_name, species_code, default_subculture_interval_days, notes)
		VALUES (?, ?, ?, ?, ?, COALESCE(?, 28), ?)
	`, id, req.Genus, req.SpeciesName, req.CommonName, req.SpeciesCode,
		req.DefaultSubcultureIntervalDays, req.Notes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create species: %v", util.ErrConstraint, err)
	}
	return s.GetSpecies(id)
}

// UpdateSpecies applies a partial update to a species entry
func (s *Store) UpdateSpecies(req *model.UpdateSpeciesRequest) error {
	var u query.Update
	query.SetIf(&u, "genus", req.Genus)
	query.SetIf(&u, "species_name", req.SpeciesName)
	query.SetIf(&u, "common_name", req.CommonName)
	query.SetIf(&u, "species_code", req.SpeciesCode)
	query.SetIf(&u, "default_subculture_interval_days", req.DefaultSubcultureIntervalDays)
	query.SetIf(&u, "notes", req.Notes)

	clause, args, err := u.Clause(req.ID)
	if err != nil {
		return err
	}

	res, err := s.db.Exec("UPDATE species "+clause+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update species: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}
