package model

// Specimen is a living culture. The accession number is assigned at
// creation and never changes; deletion only sets is_archived.
type Specimen struct {
	ID                    string  `json:"id"`
	AccessionNumber       string  `json:"accession_number"`
	SpeciesID             string  `json:"species_id"`
	SpeciesCode           *string `json:"species_code,omitempty"`
	SpeciesName           *string `json:"species_name,omitempty"`
	ProjectID             *string `json:"project_id,omitempty"`
	ProjectName           *string `json:"project_name,omitempty"`
	Stage                 string  `json:"stage"`
	CustomStage           *string `json:"custom_stage,omitempty"`
	Provenance            *string `json:"provenance,omitempty"`
	SourcePlant           *string `json:"source_plant,omitempty"`
	InitiationDate        string  `json:"initiation_date"`
	Location              *string `json:"location,omitempty"`
	LocationDetails       *string `json:"location_details,omitempty"`
	PropagationMethod     *string `json:"propagation_method,omitempty"`
	AcclimatizationStatus *string `json:"acclimatization_status,omitempty"`
	HealthStatus          *string `json:"health_status,omitempty"`
	DiseaseStatus         *string `json:"disease_status,omitempty"`
	QuarantineFlag        bool    `json:"quarantine_flag"`
	QuarantineReleaseDate *string `json:"quarantine_release_date,omitempty"`
	PermitNumber          *string `json:"permit_number,omitempty"`
	PermitExpiry          *string `json:"permit_expiry,omitempty"`
	IPFlag                bool    `json:"ip_flag"`
	IPNotes               *string `json:"ip_notes,omitempty"`
	EnvironmentalNotes    *string `json:"environmental_notes,omitempty"`
	SubcultureCount       int     `json:"subculture_count"`
	ParentSpecimenID      *string `json:"parent_specimen_id,omitempty"`
	QRCodeData            *string `json:"qr_code_data,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
	EmployeeID            *string `json:"employee_id,omitempty"`
	IsArchived            bool    `json:"is_archived"`
	ArchivedAt            *string `json:"archived_at,omitempty"`
	CreatedBy             *string `json:"created_by,omitempty"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

type CreateSpecimenRequest struct {
	SpeciesID             string  `json:"species_id"`
	ProjectID             *string `json:"project_id,omitempty"`
	Stage                 string  `json:"stage"`
	CustomStage           *string `json:"custom_stage,omitempty"`
	Provenance            *string `json:"provenance,omitempty"`
	SourcePlant           *string `json:"source_plant,omitempty"`
	InitiationDate        string  `json:"initiation_date"`
	Location              *string `json:"location,omitempty"`
	LocationDetails       *string `json:"location_details,omitempty"`
	PropagationMethod     *string `json:"propagation_method,omitempty"`
	AcclimatizationStatus *string `json:"acclimatization_status,omitempty"`
	HealthStatus          *string `json:"health_status,omitempty"`
	DiseaseStatus         *string `json:"disease_status,omitempty"`
	QuarantineFlag        *bool   `json:"quarantine_flag,omitempty"`
	PermitNumber          *string `json:"permit_number,omitempty"`
	PermitExpiry          *string `json:"permit_expiry,omitempty"`
	IPFlag                *bool   `json:"ip_flag,omitempty"`
	IPNotes               *string `json:"ip_notes,omitempty"`
	EnvironmentalNotes    *string `json:"environmental_notes,omitempty"`
	ParentSpecimenID      *string `json:"parent_specimen_id,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
	EmployeeID            *string `json:"employee_id,omitempty"`
}

type UpdateSpecimenRequest struct {
	ID                    string  `json:"id"`
	Stage                 *string `json:"stage,omitempty"`
	CustomStage           *string `json:"custom_stage,omitempty"`
	Location              *string `json:"location,omitempty"`
	LocationDetails       *string `json:"location_details,omitempty"`
	PropagationMethod     *string `json:"propagation_method,omitempty"`
	AcclimatizationStatus *string `json:"acclimatization_status,omitempty"`
	HealthStatus          *string `json:"health_status,omitempty"`
	DiseaseStatus         *string `json:"disease_status,omitempty"`
	QuarantineFlag        *bool   `json:"quarantine_flag,omitempty"`
	QuarantineReleaseDate *string `json:"quarantine_release_date,omitempty"`
	PermitNumber          *string `json:"permit_number,omitempty"`
	PermitExpiry          *string `json:"permit_expiry,omitempty"`
	IPFlag                *bool   `json:"ip_flag,omitempty"`
	IPNotes               *string `json:"ip_notes,omitempty"`
	EnvironmentalNotes    *string `json:"environmental_notes,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
}

type SpecimenSearchParams struct {
	Query          *string `json:"query,omitempty"`
	SpeciesID      *string `json:"species_id,omitempty"`
	Stage          *string `json:"stage,omitempty"`
	ProjectID      *string `json:"project_id,omitempty"`
	QuarantineOnly *bool   `json:"quarantine_only,omitempty"`
	Archived       *bool   `json:"archived,omitempty"`
	Page           *int    `json:"page,omitempty"`
	PerPage        *int    `json:"per_page,omitempty"`
}

type StageCount struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
}

type SpeciesCount struct {
	SpeciesCode string `json:"species_code"`
	Count       int64  `json:"count"`
}

type SpecimenStats struct {
	TotalSpecimens    int64          `json:"total_specimens"`
	ActiveSpecimens   int64          `json:"active_specimens"`
	Quarantined       int64          `json:"quarantined"`
	Archived          int64          `json:"archived"`
	ByStage           []StageCount   `json:"by_stage"`
	BySpecies         []SpeciesCount `json:"by_species"`
	RecentSubcultures int64          `json:"recent_subcultures"`
}
