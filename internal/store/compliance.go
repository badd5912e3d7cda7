package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/query"
	"github.com/jnowat/SteloPTC/internal/util"
)

const complianceSelect = `
	SELECT cr.id, cr.specimen_id, s.accession_number, cr.record_type, cr.agency,
	       cr.permit_number, cr.permit_expiry, cr.test_type, cr.test_method,
	       cr.test_date, cr.test_lab, cr.test_result, cr.status, cr.flag_reason,
	       cr.chain_of_custody, cr.notes, cr.document_path, cr.created_by,
	       cr.created_at, cr.updated_at
	FROM compliance_records cr
	LEFT JOIN specimens s ON s.id = cr.specimen_id
`

func scanCompliance(row interface{ Scan(...any) error }) (*model.ComplianceRecord, error) {
	cr := &model.ComplianceRecord{}
	err := row.Scan(
		&cr.ID, &cr.SpecimenID, &cr.SpecimenAccession, &cr.RecordType, &cr.Agency,
		&cr.PermitNumber, &cr.PermitExpiry, &cr.TestType, &cr.TestMethod,
		&cr.TestDate, &cr.TestLab, &cr.TestResult, &cr.Status, &cr.FlagReason,
		&cr.ChainOfCustody, &cr.Notes, &cr.DocumentPath, &cr.CreatedBy,
		&cr.CreatedAt, &cr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cr, nil
}

// ListComplianceRecords returns records for one specimen, or the 200 most
// recent records overall when no specimen is given.
func (s *Store) ListComplianceRecords(specimenID *string) ([]model.ComplianceRecord, error) {
	var rows *sql.Rows
	var err error
	if specimenID != nil {
		rows, err = s.db.Query(
			complianceSelect+"WHERE cr.specimen_id = ? ORDER BY cr.created_at DESC", *specimenID)
	} else {
		rows, err = s.db.Query(complianceSelect + "ORDER BY cr.created_at DESC LIMIT 200")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query compliance records: %w", err)
	}
	defer rows.Close()

	var list []model.ComplianceRecord
	for rows.Next() {
		cr, err := scanCompliance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compliance record: %w", err)
		}
		list = append(list, *cr)
	}
	return list, rows.Err()
}

// GetComplianceRecord retrieves one record, or nil when absent
func (s *Store) GetComplianceRecord(id string) (*model.ComplianceRecord, error) {
	cr, err := scanCompliance(s.db.QueryRow(complianceSelect+"WHERE cr.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get compliance record: %w", err)
	}
	return cr, nil
}

// CreateComplianceRecord inserts a record and returns it
func (s *Store) CreateComplianceRecord(req *model.CreateComplianceRequest, createdBy *string) (*model.ComplianceRecord, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO compliance_records (
			id, specimen_id, record_type, agency, permit_number, permit_expiry,
			test_type, test_method, test_date, test_lab, test_result, status,
			chain_of_custody, notes, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, 'valid'), ?, ?, ?)
	`, id, req.SpecimenID, req.RecordType, req.Agency, req.PermitNumber, req.PermitExpiry,
		req.TestType, req.TestMethod, req.TestDate, req.TestLab, req.TestResult, req.Status,
		req.ChainOfCustody, req.Notes, createdBy)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create compliance record: %v", util.ErrConstraint, err)
	}
	return s.GetComplianceRecord(id)
}

// UpdateComplianceRecord applies a partial update
func (s *Store) UpdateComplianceRecord(req *model.UpdateComplianceRequest) error {
	var u query.Update
	query.SetIf(&u, "test_result", req.TestResult)
	query.SetIf(&u, "status", req.Status)
	query.SetIf(&u, "flag_reason", req.FlagReason)
	query.SetIf(&u, "notes", req.Notes)

	clause, args, err := u.Clause(req.ID)
	if err != nil {
		return err
	}

	res, err := s.db.Exec("UPDATE compliance_records "+clause+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update compliance record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}

type flagRule struct {
	sql      string
	flagType string
	message  string
	severity string
}

// flagRules are evaluated against active specimens only. Each query yields
// (specimen_id, accession_number, species_code) rows.
var flagRules = []flagRule{
	{
		sql: `SELECT s.id, s.accession_number, sp.species_code
		      FROM specimens s
		      JOIN species sp ON s.species_id = sp.id
		      WHERE s.permit_expiry IS NOT NULL AND s.permit_expiry < date('now')
		      AND s.is_archived = 0`,
		flagType: "expired_permit",
		message:  "Permit has expired",
		severity: "critical",
	},
	{
		sql: `SELECT s.id, s.accession_number, sp.species_code
		      FROM specimens s
		      JOIN species sp ON s.species_id = sp.id
		      WHERE sp.species_code LIKE 'CIT-%'
		      AND s.is_archived = 0
		      AND s.id NOT IN (
		          SELECT specimen_id FROM compliance_records
		          WHERE test_type = 'HLB' AND test_date >= date('now', '-12 months')
		          AND test_result IS NOT NULL
		      )`,
		flagType: "missing_hlb_test",
		message:  "Citrus specimen missing HLB test in last 12 months",
		severity: "critical",
	},
	{
		sql: `SELECT s.id, s.accession_number, sp.species_code
		      FROM specimens s
		      JOIN species sp ON s.species_id = sp.id
		      WHERE s.quarantine_flag = 1 AND s.quarantine_release_date IS NULL
		      AND s.is_archived = 0`,
		flagType: "quarantine_no_release",
		message:  "Quarantined specimen has no scheduled release date",
		severity: "high",
	},
	{
		sql: `SELECT DISTINCT s.id, s.accession_number, sp.species_code
		      FROM specimens s
		      JOIN species sp ON s.species_id = sp.id
		      JOIN compliance_records cr ON cr.specimen_id = s.id
		      WHERE cr.test_result = 'positive' AND s.quarantine_flag = 0
		      AND s.is_archived = 0`,
		flagType: "positive_not_quarantined",
		message:  "Specimen has positive disease test but is not quarantined",
		severity: "critical",
	},
}

// ComplianceFlags evaluates every flag rule and returns the combined
// warnings. Flags are computed, never stored.
func (s *Store) ComplianceFlags() ([]model.ComplianceFlag, error) {
	flags := []model.ComplianceFlag{}

	for _, rule := range flagRules {
		rows, err := s.db.Query(rule.sql)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s: %w", rule.flagType, err)
		}

		for rows.Next() {
			f := model.ComplianceFlag{
				FlagType: rule.flagType,
				Message:  rule.message,
				Severity: rule.severity,
			}
			if err := rows.Scan(&f.SpecimenID, &f.AccessionNumber, &f.SpeciesCode); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan %s flag: %w", rule.flagType, err)
			}
			flags = append(flags, f)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return flags, nil
}
