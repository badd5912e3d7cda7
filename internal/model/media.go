package model

// MediaBatch is one prepared batch of culture medium. The human-readable
// batch_id is generated as MB-<YYYYMMDD>-<sequence>.
type MediaBatch struct {
	ID                      string         `json:"id"`
	BatchID                 string         `json:"batch_id"`
	Name                    string         `json:"name"`
	PreparationDate         string         `json:"preparation_date"`
	ExpirationDate          *string        `json:"expiration_date,omitempty"`
	BasalSalts              *string        `json:"basal_salts,omitempty"`
	BasalSaltsConcentration *float64       `json:"basal_salts_concentration,omitempty"`
	Vitamins                *string        `json:"vitamins,omitempty"`
	SucroseGPerL            *float64       `json:"sucrose_g_per_l,omitempty"`
	AgarGPerL               *float64       `json:"agar_g_per_l,omitempty"`
	GellingAgent            *string        `json:"gelling_agent,omitempty"`
	PHBeforeAutoclave       *float64       `json:"ph_before_autoclave,omitempty"`
	PHAfterAutoclave        *float64       `json:"ph_after_autoclave,omitempty"`
	SterilizationMethod     *string        `json:"sterilization_method,omitempty"`
	VolumePreparedML        *float64       `json:"volume_prepared_ml,omitempty"`
	VolumeUsedML            *float64       `json:"volume_used_ml,omitempty"`
	VolumeRemainingML       *float64       `json:"volume_remaining_ml,omitempty"`
	StorageConditions       *string        `json:"storage_conditions,omitempty"`
	QCNotes                 *string        `json:"qc_notes,omitempty"`
	SupplierInfo            *string        `json:"supplier_info,omitempty"`
	CostPerBatch            *float64       `json:"cost_per_batch,omitempty"`
	Osmolarity              *float64       `json:"osmolarity,omitempty"`
	Conductivity            *float64       `json:"conductivity,omitempty"`
	IsCustom                bool           `json:"is_custom"`
	NeedsReview             bool           `json:"needs_review"`
	Notes                   *string        `json:"notes,omitempty"`
	Hormones                []MediaHormone `json:"hormones"`
	EmployeeID              *string        `json:"employee_id,omitempty"`
	CreatedBy               *string        `json:"created_by,omitempty"`
	CreatedAt               string         `json:"created_at"`
	UpdatedAt               string         `json:"updated_at"`
}

// MediaHormone is one growth regulator or reagent added to a media batch.
// ReagentBatchID links back to the inventory item the amount was drawn from.
type MediaHormone struct {
	ID                  string   `json:"id"`
	HormoneName         string   `json:"hormone_name"`
	HormoneType         *string  `json:"hormone_type,omitempty"`
	ConcentrationMgPerL float64  `json:"concentration_mg_per_l"`
	Supplier            *string  `json:"supplier,omitempty"`
	LotNumber           *string  `json:"lot_number,omitempty"`
	ReagentBatchID      *string  `json:"reagent_batch_id,omitempty"`
	AmountUsed          *float64 `json:"amount_used,omitempty"`
	AmountUnit          *string  `json:"amount_unit,omitempty"`
}

type CreateMediaBatchRequest struct {
	Name                    string         `json:"name"`
	PreparationDate         string         `json:"preparation_date"`
	ExpirationDate          *string        `json:"expiration_date,omitempty"`
	BasalSalts              *string        `json:"basal_salts,omitempty"`
	BasalSaltsConcentration *float64       `json:"basal_salts_concentration,omitempty"`
	Vitamins                *string        `json:"vitamins,omitempty"`
	SucroseGPerL            *float64       `json:"sucrose_g_per_l,omitempty"`
	AgarGPerL               *float64       `json:"agar_g_per_l,omitempty"`
	GellingAgent            *string        `json:"gelling_agent,omitempty"`
	PHBeforeAutoclave       *float64       `json:"ph_before_autoclave,omitempty"`
	PHAfterAutoclave        *float64       `json:"ph_after_autoclave,omitempty"`
	SterilizationMethod     *string        `json:"sterilization_method,omitempty"`
	VolumePreparedML        *float64       `json:"volume_prepared_ml,omitempty"`
	StorageConditions       *string        `json:"storage_conditions,omitempty"`
	QCNotes                 *string        `json:"qc_notes,omitempty"`
	SupplierInfo            *string        `json:"supplier_info,omitempty"`
	CostPerBatch            *float64       `json:"cost_per_batch,omitempty"`
	Osmolarity              *float64       `json:"osmolarity,omitempty"`
	Conductivity            *float64       `json:"conductivity,omitempty"`
	IsCustom                *bool          `json:"is_custom,omitempty"`
	Notes                   *string        `json:"notes,omitempty"`
	Hormones                []MediaHormone `json:"hormones,omitempty"`
	EmployeeID              *string        `json:"employee_id,omitempty"`
}

type UpdateMediaBatchRequest struct {
	ID                string   `json:"id"`
	Name              *string  `json:"name,omitempty"`
	ExpirationDate    *string  `json:"expiration_date,omitempty"`
	VolumeUsedML      *float64 `json:"volume_used_ml,omitempty"`
	VolumeRemainingML *float64 `json:"volume_remaining_ml,omitempty"`
	StorageConditions *string  `json:"storage_conditions,omitempty"`
	QCNotes           *string  `json:"qc_notes,omitempty"`
	NeedsReview       *bool    `json:"needs_review,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}
