package model

// InventoryItem is a tracked supply. Stock never goes negative; every
// stock mutation is audited with the old and new quantity.
type InventoryItem struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Unit              string   `json:"unit"`
	CurrentStock      float64  `json:"current_stock"`
	MinimumStock      float64  `json:"minimum_stock"`
	ReorderPoint      *float64 `json:"reorder_point,omitempty"`
	Supplier          *string  `json:"supplier,omitempty"`
	CatalogNumber     *string  `json:"catalog_number,omitempty"`
	LotNumber         *string  `json:"lot_number,omitempty"`
	StorageLocation   *string  `json:"storage_location,omitempty"`
	ExpirationDate    *string  `json:"expiration_date,omitempty"`
	CostPerUnit       *float64 `json:"cost_per_unit,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	PhysicalState     *string  `json:"physical_state,omitempty"`
	Concentration     *float64 `json:"concentration,omitempty"`
	ConcentrationUnit *string  `json:"concentration_unit,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

type CreateInventoryItemRequest struct {
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Unit              string   `json:"unit"`
	CurrentStock      *float64 `json:"current_stock,omitempty"`
	MinimumStock      *float64 `json:"minimum_stock,omitempty"`
	ReorderPoint      *float64 `json:"reorder_point,omitempty"`
	Supplier          *string  `json:"supplier,omitempty"`
	CatalogNumber     *string  `json:"catalog_number,omitempty"`
	LotNumber         *string  `json:"lot_number,omitempty"`
	StorageLocation   *string  `json:"storage_location,omitempty"`
	ExpirationDate    *string  `json:"expiration_date,omitempty"`
	CostPerUnit       *float64 `json:"cost_per_unit,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	PhysicalState     *string  `json:"physical_state,omitempty"`
	Concentration     *float64 `json:"concentration,omitempty"`
	ConcentrationUnit *string  `json:"concentration_unit,omitempty"`
}

type UpdateInventoryItemRequest struct {
	ID                string   `json:"id"`
	Name              *string  `json:"name,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Unit              *string  `json:"unit,omitempty"`
	CurrentStock      *float64 `json:"current_stock,omitempty"`
	MinimumStock      *float64 `json:"minimum_stock,omitempty"`
	ReorderPoint      *float64 `json:"reorder_point,omitempty"`
	Supplier          *string  `json:"supplier,omitempty"`
	CatalogNumber     *string  `json:"catalog_number,omitempty"`
	LotNumber         *string  `json:"lot_number,omitempty"`
	StorageLocation   *string  `json:"storage_location,omitempty"`
	ExpirationDate    *string  `json:"expiration_date,omitempty"`
	CostPerUnit       *float64 `json:"cost_per_unit,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	PhysicalState     *string  `json:"physical_state,omitempty"`
	Concentration     *float64 `json:"concentration,omitempty"`
	ConcentrationUnit *string  `json:"concentration_unit,omitempty"`
}

type AdjustStockRequest struct {
	ID         string  `json:"id"`
	Adjustment float64 `json:"adjustment"`
	Reason     *string `json:"reason,omitempty"`
}

type LowStockAlert struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	CurrentStock float64  `json:"current_stock"`
	MinimumStock float64  `json:"minimum_stock"`
	ReorderPoint *float64 `json:"reorder_point,omitempty"`
	Unit         string   `json:"unit"`
}
