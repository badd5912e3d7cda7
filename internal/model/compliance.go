package model

// ComplianceRecord tracks permits, disease tests, and certifications for a
// specimen.
type ComplianceRecord struct {
	ID                string  `json:"id"`
	SpecimenID        string  `json:"specimen_id"`
	SpecimenAccession *string `json:"specimen_accession,omitempty"`
	RecordType        string  `json:"record_type"`
	Agency            *string `json:"agency,omitempty"`
	PermitNumber      *string `json:"permit_number,omitempty"`
	PermitExpiry      *string `json:"permit_expiry,omitempty"`
	TestType          *string `json:"test_type,omitempty"`
	TestMethod        *string `json:"test_method,omitempty"`
	TestDate          *string `json:"test_date,omitempty"`
	TestLab           *string `json:"test_lab,omitempty"`
	TestResult        *string `json:"test_result,omitempty"`
	Status            string  `json:"status"`
	FlagReason        *string `json:"flag_reason,omitempty"`
	ChainOfCustody    *string `json:"chain_of_custody,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	DocumentPath      *string `json:"document_path,omitempty"`
	CreatedBy         *string `json:"created_by,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type CreateComplianceRequest struct {
	SpecimenID     string  `json:"specimen_id"`
	RecordType     string  `json:"record_type"`
	Agency         *string `json:"agency,omitempty"`
	PermitNumber   *string `json:"permit_number,omitempty"`
	PermitExpiry   *string `json:"permit_expiry,omitempty"`
	TestType       *string `json:"test_type,omitempty"`
	TestMethod     *string `json:"test_method,omitempty"`
	TestDate       *string `json:"test_date,omitempty"`
	TestLab        *string `json:"test_lab,omitempty"`
	TestResult     *string `json:"test_result,omitempty"`
	Status         *string `json:"status,omitempty"`
	ChainOfCustody *string `json:"chain_of_custody,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type UpdateComplianceRequest struct {
	ID         string  `json:"id"`
	TestResult *string `json:"test_result,omitempty"`
	Status     *string `json:"status,omitempty"`
	FlagReason *string `json:"flag_reason,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ComplianceFlag is a computed warning, not a stored row.
type ComplianceFlag struct {
	SpecimenID      string `json:"specimen_id"`
	AccessionNumber string `json:"accession_number"`
	SpeciesCode     string `json:"species_code"`
	FlagType        string `json:"flag_type"`
	Message         string `json:"message"`
	Severity        string `json:"severity"`
}
