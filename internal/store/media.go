package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/query"
	"github.com/jnowat/SteloPTC/internal/util"
)

const mediaBatchColumns = `
	id, batch_id, name, preparation_date, expiration_date,
	basal_salts, basal_salts_concentration, vitamins, sucrose_g_per_l,
	agar_g_per_l, gelling_agent, ph_before_autoclave, ph_after_autoclave,
	sterilization_method, volume_prepared_ml, volume_used_ml, volume_remaining_ml,
	storage_conditions, qc_notes, supplier_info, cost_per_batch,
	osmolarity, conductivity, is_custom, needs_review, notes,
	employee_id, created_by, created_at, updated_at
`

func scanMediaBatch(row interface{ Scan(...any) error }) (*model.MediaBatch, error) {
	mb := &model.MediaBatch{Hormones: []model.MediaHormone{}}
	err := row.Scan(
		&mb.ID, &mb.BatchID, &mb.Name, &mb.PreparationDate, &mb.ExpirationDate,
		&mb.BasalSalts, &mb.BasalSaltsConcentration, &mb.Vitamins, &mb.SucroseGPerL,
		&mb.AgarGPerL, &mb.GellingAgent, &mb.PHBeforeAutoclave, &mb.PHAfterAutoclave,
		&mb.SterilizationMethod, &mb.VolumePreparedML, &mb.VolumeUsedML, &mb.VolumeRemainingML,
		&mb.StorageConditions, &mb.QCNotes, &mb.SupplierInfo, &mb.CostPerBatch,
		&mb.Osmolarity, &mb.Conductivity, &mb.IsCustom, &mb.NeedsReview, &mb.Notes,
		&mb.EmployeeID, &mb.CreatedBy, &mb.CreatedAt, &mb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return mb, nil
}

// NextBatchID generates the next human-readable batch id for the given
// preparation date. Format: MB-<YYYYMMDD>-<NNN>.
func (s *Store) NextBatchID(preparationDate string) (string, error) {
	prefix := "MB-" + strings.ReplaceAll(preparationDate, "-", "") + "-"

	var count int64
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM media_batches WHERE batch_id LIKE ?", prefix+"%",
	).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("failed to count batch ids: %w", err)
	}

	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}

// ListMediaBatches returns all batches, newest preparation date first,
// with their hormone additions attached.
func (s *Store) ListMediaBatches() ([]model.MediaBatch, error) {
	rows, err := s.db.Query(
		"SELECT " + mediaBatchColumns + " FROM media_batches ORDER BY preparation_date DESC, batch_id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query media batches: %w", err)
	}
	defer rows.Close()

	var batches []model.MediaBatch
	index := map[string]int{}
	for rows.Next() {
		mb, err := scanMediaBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media batch: %w", err)
		}
		index[mb.ID] = len(batches)
		batches = append(batches, *mb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hRows, err := s.db.Query(`
		SELECT media_batch_id, id, hormone_name, hormone_type, concentration_mg_per_l,
		       supplier, lot_number, reagent_batch_id, amount_used, amount_unit
		FROM media_hormones
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query media hormones: %w", err)
	}
	defer hRows.Close()

	for hRows.Next() {
		var batchID string
		var h model.MediaHormone
		err := hRows.Scan(&batchID, &h.ID, &h.HormoneName, &h.HormoneType, &h.ConcentrationMgPerL,
			&h.Supplier, &h.LotNumber, &h.ReagentBatchID, &h.AmountUsed, &h.AmountUnit)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media hormone: %w", err)
		}
		if i, ok := index[batchID]; ok {
			batches[i].Hormones = append(batches[i].Hormones, h)
		}
	}
	return batches, hRows.Err()
}

// GetMediaBatch retrieves one batch with hormones, or nil when absent
func (s *Store) GetMediaBatch(id string) (*model.MediaBatch, error) {
	mb, err := scanMediaBatch(s.db.QueryRow(
		"SELECT "+mediaBatchColumns+" FROM media_batches WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media batch: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, hormone_name, hormone_type, concentration_mg_per_l,
		       supplier, lot_number, reagent_batch_id, amount_used, amount_unit
		FROM media_hormones WHERE media_batch_id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query media hormones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h model.MediaHormone
		err := rows.Scan(&h.ID, &h.HormoneName, &h.HormoneType, &h.ConcentrationMgPerL,
			&h.Supplier, &h.LotNumber, &h.ReagentBatchID, &h.AmountUsed, &h.AmountUnit)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media hormone: %w", err)
		}
		mb.Hormones = append(mb.Hormones, h)
	}
	return mb, rows.Err()
}

// CreateMediaBatch inserts a batch with its hormone additions. Hormones
// drawn from inventory deduct the used amount from the source item's
// stock, clamped at zero; each deduction is returned so the caller can
// audit the old and new stock.
func (s *Store) CreateMediaBatch(req *model.CreateMediaBatchRequest, createdBy *string) (*model.MediaBatch, []StockDeduction, error) {
	batchID, err := s.NextBatchID(req.PreparationDate)
	if err != nil {
		return nil, nil, err
	}

	id := uuid.NewString()
	isCustom := req.IsCustom != nil && *req.IsCustom

	var deductions []StockDeduction
	err = s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO media_batches (
				id, batch_id, name, preparation_date, expiration_date,
				basal_salts, basal_salts_concentration, vitamins, sucrose_g_per_l,
				agar_g_per_l, gelling_agent, ph_before_autoclave, ph_after_autoclave,
				sterilization_method, volume_prepared_ml, volume_remaining_ml,
				storage_conditions, qc_notes, supplier_info, cost_per_batch,
				osmolarity, conductivity, is_custom, notes, employee_id, created_by
			) VALUES (?, ?, ?, ?, ?, COALESCE(?, 'MS'), COALESCE(?, 1.0), ?, ?, ?, ?, ?, ?,
				COALESCE(?, 'autoclave'), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, batchID, req.Name, req.PreparationDate, req.ExpirationDate,
			req.BasalSalts, req.BasalSaltsConcentration, req.Vitamins, req.SucroseGPerL,
			req.AgarGPerL, req.GellingAgent, req.PHBeforeAutoclave, req.PHAfterAutoclave,
			req.SterilizationMethod, req.VolumePreparedML, req.VolumePreparedML,
			req.StorageConditions, req.QCNotes, req.SupplierInfo, req.CostPerBatch,
			req.Osmolarity, req.Conductivity, isCustom, req.Notes, req.EmployeeID, createdBy)
		if err != nil {
			return fmt.Errorf("failed to insert media batch: %w", err)
		}

		for _, h := range req.Hormones {
			_, err := tx.Exec(`
				INSERT INTO media_hormones (
					id, media_batch_id, hormone_name, hormone_type, concentration_mg_per_l,
					supplier, lot_number, reagent_batch_id, amount_used, amount_unit
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, uuid.NewString(), id, h.HormoneName, h.HormoneType, h.ConcentrationMgPerL,
				h.Supplier, h.LotNumber, h.ReagentBatchID, h.AmountUsed, h.AmountUnit)
			if err != nil {
				return fmt.Errorf("failed to insert media hormone: %w", err)
			}

			if h.ReagentBatchID != nil && h.AmountUsed != nil && *h.AmountUsed > 0 {
				d, err := deductStock(tx, *h.ReagentBatchID, *h.AmountUsed)
				if err != nil {
					return fmt.Errorf("failed to deduct reagent stock: %w", err)
				}
				if d != nil {
					deductions = append(deductions, *d)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	mb, err := s.GetMediaBatch(id)
	return mb, deductions, err
}

// UpdateMediaBatch applies a partial update to a batch
func (s *Store) UpdateMediaBatch(req *model.UpdateMediaBatchRequest) error {
	var u query.Update
	query.SetIf(&u, "name", req.Name)
	query.SetIf(&u, "expiration_date", req.ExpirationDate)
	query.SetIf(&u, "volume_used_ml", req.VolumeUsedML)
	query.SetIf(&u, "volume_remaining_ml", req.VolumeRemainingML)
	query.SetIf(&u, "storage_conditions", req.StorageConditions)
	query.SetIf(&u, "qc_notes", req.QCNotes)
	query.SetIf(&u, "needs_review", req.NeedsReview)
	query.SetIf(&u, "notes", req.Notes)

	clause, args, err := u.Clause(req.ID)
	if err != nil {
		return err
	}

	res, err := s.db.Exec("UPDATE media_batches "+clause+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update media batch: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteMediaBatch removes a batch; hormone rows cascade
func (s *Store) DeleteMediaBatch(id string) error {
	res, err := s.db.Exec("DELETE FROM media_batches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete media batch: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}
