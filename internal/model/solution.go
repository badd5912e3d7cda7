package model

// PreparedSolution is a diluted working solution made up from an inventory
// reagent, tracked separately from the raw stock.
type PreparedSolution struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	SourceItemID      *string  `json:"source_item_id,omitempty"`
	SourceItemName    *string  `json:"source_item_name,omitempty"`
	Concentration     float64  `json:"concentration"`
	ConcentrationUnit string   `json:"concentration_unit"`
	Solvent           *string  `json:"solvent,omitempty"`
	VolumeML          float64  `json:"volume_ml"`
	VolumeRemainingML float64  `json:"volume_remaining_ml"`
	PreparedBy        *string  `json:"prepared_by,omitempty"`
	PreparationDate   string   `json:"preparation_date"`
	ExpirationDate    *string  `json:"expiration_date,omitempty"`
	StorageConditions *string  `json:"storage_conditions,omitempty"`
	LotNumber         *string  `json:"lot_number,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

type CreatePreparedSolutionRequest struct {
	Name              string   `json:"name"`
	SourceItemID      *string  `json:"source_item_id,omitempty"`
	SourceItemName    *string  `json:"source_item_name,omitempty"`
	Concentration     float64  `json:"concentration"`
	ConcentrationUnit string   `json:"concentration_unit"`
	Solvent           *string  `json:"solvent,omitempty"`
	VolumeML          float64  `json:"volume_ml"`
	PreparationDate   string   `json:"preparation_date"`
	ExpirationDate    *string  `json:"expiration_date,omitempty"`
	StorageConditions *string  `json:"storage_conditions,omitempty"`
	LotNumber         *string  `json:"lot_number,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	// AmountUsed deducts this much of the source item's stock, clamped at zero.
	AmountUsed *float64 `json:"amount_used,omitempty"`
}

type UpdatePreparedSolutionRequest struct {
	ID                string   `json:"id"`
	Name              *string  `json:"name,omitempty"`
	VolumeRemainingML *float64 `json:"volume_remaining_ml,omitempty"`
	ExpirationDate    *string  `json:"expiration_date,omitempty"`
	StorageConditions *string  `json:"storage_conditions,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}
