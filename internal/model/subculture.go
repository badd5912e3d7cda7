package model

// Subculture is one passage event in a specimen's propagation history.
// Passage numbers are sequential per specimen.
type Subculture struct {
	ID                    string   `json:"id"`
	SpecimenID            string   `json:"specimen_id"`
	PassageNumber         int      `json:"passage_number"`
	Date                  string   `json:"date"`
	MediaBatchID          *string  `json:"media_batch_id,omitempty"`
	MediaBatchName        *string  `json:"media_batch_name,omitempty"`
	PH                    *float64 `json:"ph,omitempty"`
	TemperatureC          *float64 `json:"temperature_c,omitempty"`
	LightCycle            *string  `json:"light_cycle,omitempty"`
	LightIntensityLux     *float64 `json:"light_intensity_lux,omitempty"`
	ExperimentalTreatment *string  `json:"experimental_treatment,omitempty"`
	VesselType            *string  `json:"vessel_type,omitempty"`
	VesselSize            *string  `json:"vessel_size,omitempty"`
	VesselMaterial        *string  `json:"vessel_material,omitempty"`
	VesselLidType         *string  `json:"vessel_lid_type,omitempty"`
	LocationFrom          *string  `json:"location_from,omitempty"`
	LocationTo            *string  `json:"location_to,omitempty"`
	TempBefore            *float64 `json:"temp_before,omitempty"`
	TempAfter             *float64 `json:"temp_after,omitempty"`
	HumidityBefore        *float64 `json:"humidity_before,omitempty"`
	HumidityAfter         *float64 `json:"humidity_after,omitempty"`
	LightBefore           *string  `json:"light_before,omitempty"`
	LightAfter            *string  `json:"light_after,omitempty"`
	ExposureDurationHours *float64 `json:"exposure_duration_hours,omitempty"`
	Notes                 *string  `json:"notes,omitempty"`
	Observations          *string  `json:"observations,omitempty"`
	PerformedBy           *string  `json:"performed_by,omitempty"`
	PerformerName         *string  `json:"performer_name,omitempty"`
	EmployeeID            *string  `json:"employee_id,omitempty"`
	HealthStatus          *string  `json:"health_status,omitempty"`
	CreatedAt             string   `json:"created_at"`
	UpdatedAt             string   `json:"updated_at"`
}

type CreateSubcultureRequest struct {
	SpecimenID            string   `json:"specimen_id"`
	Date                  string   `json:"date"`
	MediaBatchID          *string  `json:"media_batch_id,omitempty"`
	PH                    *float64 `json:"ph,omitempty"`
	TemperatureC          *float64 `json:"temperature_c,omitempty"`
	LightCycle            *string  `json:"light_cycle,omitempty"`
	LightIntensityLux     *float64 `json:"light_intensity_lux,omitempty"`
	ExperimentalTreatment *string  `json:"experimental_treatment,omitempty"`
	VesselType            *string  `json:"vessel_type,omitempty"`
	VesselSize            *string  `json:"vessel_size,omitempty"`
	VesselMaterial        *string  `json:"vessel_material,omitempty"`
	VesselLidType         *string  `json:"vessel_lid_type,omitempty"`
	LocationFrom          *string  `json:"location_from,omitempty"`
	LocationTo            *string  `json:"location_to,omitempty"`
	TempBefore            *float64 `json:"temp_before,omitempty"`
	TempAfter             *float64 `json:"temp_after,omitempty"`
	HumidityBefore        *float64 `json:"humidity_before,omitempty"`
	HumidityAfter         *float64 `json:"humidity_after,omitempty"`
	LightBefore           *string  `json:"light_before,omitempty"`
	LightAfter            *string  `json:"light_after,omitempty"`
	ExposureDurationHours *float64 `json:"exposure_duration_hours,omitempty"`
	Notes                 *string  `json:"notes,omitempty"`
	Observations          *string  `json:"observations,omitempty"`
	EmployeeID            *string  `json:"employee_id,omitempty"`
	HealthStatus          *string  `json:"health_status,omitempty"`
}

type UpdateSubcultureRequest struct {
	ID           string  `json:"id"`
	Notes        *string `json:"notes,omitempty"`
	Observations *string `json:"observations,omitempty"`
	VesselType   *string `json:"vessel_type,omitempty"`
	LocationTo   *string `json:"location_to,omitempty"`
}
