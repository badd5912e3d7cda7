package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/query"
	"github.com/jnowat/SteloPTC/internal/util"
)

const solutionColumns = `
	id, name, source_item_id, source_item_name, concentration, concentration_unit,
	solvent, volume_ml, volume_remaining_ml, prepared_by, preparation_date,
	expiration_date, storage_conditions, lot_number, notes, created_at, updated_at
`

func scanSolution(row interface{ Scan(...any) error }) (*model.PreparedSolution, error) {
	ps := &model.PreparedSolution{}
	err := row.Scan(
		&ps.ID, &ps.Name, &ps.SourceItemID, &ps.SourceItemName, &ps.Concentration,
		&ps.ConcentrationUnit, &ps.Solvent, &ps.VolumeML, &ps.VolumeRemainingML,
		&ps.PreparedBy, &ps.PreparationDate, &ps.ExpirationDate, &ps.StorageConditions,
		&ps.LotNumber, &ps.Notes, &ps.CreatedAt, &ps.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// ListPreparedSolutions returns all solutions, newest first
func (s *Store) ListPreparedSolutions() ([]model.PreparedSolution, error) {
	rows, err := s.db.Query(
		"SELECT " + solutionColumns + " FROM prepared_solutions ORDER BY preparation_date DESC, name")
	if err != nil {
		return nil, fmt.Errorf("failed to query prepared solutions: %w", err)
	}
	defer rows.Close()

	var list []model.PreparedSolution
	for rows.Next() {
		ps, err := scanSolution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prepared solution: %w", err)
		}
		list = append(list, *ps)
	}
	return list, rows.Err()
}

// GetPreparedSolution retrieves one solution, or nil when absent
func (s *Store) GetPreparedSolution(id string) (*model.PreparedSolution, error) {
	ps, err := scanSolution(s.db.QueryRow(
		"SELECT "+solutionColumns+" FROM prepared_solutions WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prepared solution: %w", err)
	}
	return ps, nil
}

// CreatePreparedSolution inserts a working solution. When an amount used
// and source item are given, the source stock is deducted in the same
// transaction, clamped at zero; the deduction is returned so the caller
// can audit the old and new stock.
func (s *Store) CreatePreparedSolution(req *model.CreatePreparedSolutionRequest, preparedBy *string) (*model.PreparedSolution, *StockDeduction, error) {
	id := uuid.NewString()

	var deduction *StockDeduction
	err := s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO prepared_solutions (
				id, name, source_item_id, source_item_name, concentration, concentration_unit,
				solvent, volume_ml, volume_remaining_ml, prepared_by, preparation_date,
				expiration_date, storage_conditions, lot_number, notes
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, req.Name, req.SourceItemID, req.SourceItemName, req.Concentration,
			req.ConcentrationUnit, req.Solvent, req.VolumeML, req.VolumeML, preparedBy,
			req.PreparationDate, req.ExpirationDate, req.StorageConditions, req.LotNumber, req.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert prepared solution: %w", err)
		}

		if req.SourceItemID != nil && req.AmountUsed != nil && *req.AmountUsed > 0 {
			d, err := deductStock(tx, *req.SourceItemID, *req.AmountUsed)
			if err != nil {
				return fmt.Errorf("failed to deduct source stock: %w", err)
			}
			deduction = d
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	ps, err := s.GetPreparedSolution(id)
	return ps, deduction, err
}

// UpdatePreparedSolution applies a partial update
func (s *Store) UpdatePreparedSolution(req *model.UpdatePreparedSolutionRequest) error {
	var u query.Update
	query.SetIf(&u, "name", req.Name)
	query.SetIf(&u, "volume_remaining_ml", req.VolumeRemainingML)
	query.SetIf(&u, "expiration_date", req.ExpirationDate)
	query.SetIf(&u, "storage_conditions", req.StorageConditions)
	query.SetIf(&u, "notes", req.Notes)

	clause, args, err := u.Clause(req.ID)
	if err != nil {
		return err
	}

	res, err := s.db.Exec("UPDATE prepared_solutions "+clause+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update prepared solution: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeletePreparedSolution removes a solution
func (s *Store) DeletePreparedSolution(id string) error {
	res, err := s.db.Exec("DELETE FROM prepared_solutions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete prepared solution: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}
