package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/query"
	"github.com/jnowat/SteloPTC/internal/util"
)

const inventoryColumns = `
	id, name, category, unit, current_stock, minimum_stock, reorder_point,
	supplier, catalog_number, lot_number, storage_location, expiration_date,
	cost_per_unit, notes, physical_state, concentration, concentration_unit,
	created_at, updated_at
`

func scanInventoryItem(row interface{ Scan(...any) error }) (*model.InventoryItem, error) {
	it := &model.InventoryItem{}
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &it.Unit, &it.CurrentStock, &it.MinimumStock,
		&it.ReorderPoint, &it.Supplier, &it.CatalogNumber, &it.LotNumber,
		&it.StorageLocation, &it.ExpirationDate, &it.CostPerUnit, &it.Notes,
		&it.PhysicalState, &it.Concentration, &it.ConcentrationUnit,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// ListInventory returns all inventory items ordered by name
func (s *Store) ListInventory() ([]model.InventoryItem, error) {
	rows, err := s.db.Query("SELECT " + inventoryColumns + " FROM inventory_items ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// GetInventoryItem retrieves one item, or nil when absent
func (s *Store) GetInventoryItem(id string) (*model.InventoryItem, error) {
	it, err := scanInventoryItem(s.db.QueryRow(
		"SELECT "+inventoryColumns+" FROM inventory_items WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return it, nil
}

// CreateInventoryItem inserts an item and returns it
func (s *Store) CreateInventoryItem(req *model.CreateInventoryItemRequest) (*model.InventoryItem, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO inventory_items (
			id, name, category, unit, current_stock, minimum_stock, reorder_point,
			supplier, catalog_number, lot_number, storage_location, expiration_date,
			cost_per_unit, notes, physical_state, concentration, concentration_unit
		) VALUES (?, ?, ?, ?, COALESCE(?, 0), COALESCE(?, 0), ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, 'solid'), ?, ?)
	`, id, req.Name, req.Category, req.Unit, req.CurrentStock, req.MinimumStock, req.ReorderPoint,
		req.Supplier, req.CatalogNumber, req.LotNumber, req.StorageLocation, req.ExpirationDate,
		req.CostPerUnit, req.Notes, req.PhysicalState, req.Concentration, req.ConcentrationUnit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create inventory item: %v", util.ErrConstraint, err)
	}
	return s.GetInventoryItem(id)
}

// UpdateInventoryItem applies a partial update
func (s *Store) UpdateInventoryItem(req *model.UpdateInventoryItemRequest) error {
	var u query.Update
	query.SetIf(&u, "name", req.Name)
	query.SetIf(&u, "category", req.Category)
	query.SetIf(&u, "unit", req.Unit)
	query.SetIf(&u, "current_stock", req.CurrentStock)
	query.SetIf(&u, "minimum_stock", req.MinimumStock)
	query.SetIf(&u, "reorder_point", req.ReorderPoint)
	query.SetIf(&u, "supplier", req.Supplier)
	query.SetIf(&u, "catalog_number", req.CatalogNumber)
	query.SetIf(&u, "lot_number", req.LotNumber)
	query.SetIf(&u, "storage_location", req.StorageLocation)
	query.SetIf(&u, "expiration_date", req.ExpirationDate)
	query.SetIf(&u, "cost_per_unit", req.CostPerUnit)
	query.SetIf(&u, "notes", req.Notes)
	query.SetIf(&u, "physical_state", req.PhysicalState)
	query.SetIf(&u, "concentration", req.Concentration)
	query.SetIf(&u, "concentration_unit", req.ConcentrationUnit)

	clause, args, err := u.Clause(req.ID)
	if err != nil {
		return err
	}

	res, err := s.db.Exec("UPDATE inventory_items "+clause+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteInventoryItem removes an item
func (s *Store) DeleteInventoryItem(id string) error {
	res, err := s.db.Exec("DELETE FROM inventory_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}

// AdjustStock applies a signed stock adjustment. An adjustment that would
// take the stock below zero fails and changes nothing. Returns the stock
// before the change and the updated item.
func (s *Store) AdjustStock(id string, adjustment float64) (old float64, item *model.InventoryItem, err error) {
	err = s.Transaction(func(tx *sql.Tx) error {
		err := tx.QueryRow(
			"SELECT current_stock FROM inventory_items WHERE id = ?", id,
		).Scan(&old)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: inventory item %s", util.ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to read stock: %w", err)
		}

		if old+adjustment < 0 {
			return fmt.Errorf("%w: adjustment %.2f would take stock below zero (current %.2f)",
				util.ErrConstraint, adjustment, old)
		}

		_, err = tx.Exec(`
			UPDATE inventory_items
			SET current_stock = current_stock + ?, updated_at = datetime('now')
			WHERE id = ?
		`, adjustment, id)
		if err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	item, err = s.GetInventoryItem(id)
	return old, item, err
}

// StockDeduction records a clamped stock draw made inside another
// write's transaction, so the caller can audit the old and new values.
type StockDeduction struct {
	ItemID   string
	OldStock float64
	NewStock float64
}

// deductStock draws an amount from an item's stock inside tx, clamped
// at zero. A missing item is skipped rather than failing the enclosing
// insert.
func deductStock(tx *sql.Tx, itemID string, amount float64) (*StockDeduction, error) {
	var old float64
	err := tx.QueryRow(
		"SELECT current_stock FROM inventory_items WHERE id = ?", itemID,
	).Scan(&old)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stock: %w", err)
	}

	updated := old - amount
	if updated < 0 {
		updated = 0
	}

	_, err = tx.Exec(`
		UPDATE inventory_items
		SET current_stock = ?, updated_at = datetime('now')
		WHERE id = ?
	`, updated, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to deduct stock: %w", err)
	}
	return &StockDeduction{ItemID: itemID, OldStock: old, NewStock: updated}, nil
}

// LowStockAlerts lists items at or below their minimum stock or reorder
// point.
func (s *Store) LowStockAlerts() ([]model.LowStockAlert, error) {
	rows, err := s.db.Query(`
		SELECT id, name, category, current_stock, minimum_stock, reorder_point, unit
		FROM inventory_items
		WHERE current_stock <= minimum_stock
		   OR (reorder_point IS NOT NULL AND current_stock <= reorder_point)
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock: %w", err)
	}
	defer rows.Close()

	alerts := []model.LowStockAlert{}
	for rows.Next() {
		var a model.LowStockAlert
		err := rows.Scan(&a.ID, &a.Name, &a.Category, &a.CurrentStock, &a.MinimumStock, &a.ReorderPoint, &a.Unit)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
