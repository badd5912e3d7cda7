package model

// Species is a master-list entry; species_code feeds accession numbers.
type Species struct {
	ID                            string  `json:"id"`
	Genus                         string  `json:"genus"`
	SpeciesName                   string  `json:"species_name"`
	CommonName                    *string `json:"common_name,omitempty"`
	SpeciesCode                   string  `json:"species_code"`
	DefaultSubcultureIntervalDays *int    `json:"default_subculture_interval_days,omitempty"`
	Notes                         *string `json:"notes,omitempty"`
	CreatedAt                     string  `json:"created_at"`
	UpdatedAt                     string  `json:"updated_at"`
}

type CreateSpeciesRequest struct {
	Genus                         string  `json:"genus"`
	SpeciesName                   string  `json:"species_name"`
	CommonName                    *string `json:"common_name,omitempty"`
	SpeciesCode                   string  `json:"species_code"`
	DefaultSubcultureIntervalDays *int    `json:"default_subculture_interval_days,omitempty"`
	Notes                         *string `json:"notes,omitempty"`
}

type UpdateSpeciesRequest struct {
	ID                            string  `json:"id"`
	Genus                         *string `json:"genus,omitempty"`
	SpeciesName                   *string `json:"species_name,omitempty"`
	CommonName                    *string `json:"common_name,omitempty"`
	SpeciesCode                   *string `json:"species_code,omitempty"`
	DefaultSubcultureIntervalDays *int    `json:"default_subculture_interval_days,omitempty"`
	Notes                         *string `json:"notes,omitempty"`
}
