package commands

import (
	"github.com/jnowat/SteloPTC/internal/model"
)

// ListComplianceRecords returns records for one specimen, or the most
// recent records overall.
func (a *App) ListComplianceRecords(token string, specimenID *string) ([]model.ComplianceRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.ListComplianceRecords(specimenID)
}

// CreateComplianceRecord registers a permit, test, or certification
func (a *App) CreateComplianceRecord(token string, req *model.CreateComplianceRequest) (*model.ComplianceRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	cr, err := a.store.CreateComplianceRecord(req, &user.ID)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "create", "compliance", &cr.ID, nil, nil,
		ptr("Compliance record: "+cr.RecordType))
	return cr, nil
}

// UpdateComplianceRecord applies a partial update and returns the fresh
// row
func (a *App) UpdateComplianceRecord(token string, req *model.UpdateComplianceRequest) (*model.ComplianceRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	if err := a.store.UpdateComplianceRecord(req); err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "update", "compliance", &req.ID, nil, nil, nil)
	return a.store.GetComplianceRecord(req.ID)
}

// ComplianceFlags computes the current warnings across all active
// specimens
func (a *App) ComplianceFlags(token string) ([]model.ComplianceFlag, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.ComplianceFlags()
}
