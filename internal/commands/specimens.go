package commands

import (
	"encoding/json"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/util"
)

// SearchSpecimens returns a filtered page of specimens. Any valid session
// may read.
func (a *App) SearchSpecimens(token string, params *model.SpecimenSearchParams) (*model.Paginated[model.Specimen], error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.SearchSpecimens(params)
}

// GetSpecimen fetches one specimen by id
func (a *App) GetSpecimen(token, id string) (*model.Specimen, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}

	sp, err := a.store.GetSpecimen(id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, util.ErrNotFound
	}
	return sp, nil
}

// GetSpecimenByAccession fetches one specimen by its accession number,
// the lookup behind label scanning.
func (a *App) GetSpecimenByAccession(token, accession string) (*model.Specimen, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}

	sp, err := a.store.GetSpecimenByAccession(accession)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, util.ErrNotFound
	}
	return sp, nil
}

// CreateSpecimen registers a new culture and assigns its accession number
func (a *App) CreateSpecimen(token string, req *model.CreateSpecimenRequest) (*model.Specimen, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	sp, err := a.store.CreateSpecimen(req, &user.ID)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "create", "specimen", &sp.ID, nil, ptr(sp.AccessionNumber), nil)
	return sp, nil
}

// UpdateSpecimen applies a partial update and returns the fresh row. The
// audit entry carries the before and after images.
func (a *App) UpdateSpecimen(token string, req *model.UpdateSpecimenRequest) (*model.Specimen, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	before, err := a.store.GetSpecimen(req.ID)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, util.ErrNotFound
	}

	if err := a.store.UpdateSpecimen(req); err != nil {
		return nil, err
	}

	after, err := a.store.GetSpecimen(req.ID)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "update", "specimen", &req.ID,
		asJSON(before), asJSON(after), nil)
	return after, nil
}

// DeleteSpecimen archives a specimen. The record and its history remain;
// managing roles only.
func (a *App) DeleteSpecimen(token, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireManage(token)
	if err != nil {
		return err
	}

	before, err := a.store.GetSpecimen(id)
	if err != nil {
		return err
	}
	if before == nil {
		return util.ErrNotFound
	}

	if err := a.store.ArchiveSpecimen(id); err != nil {
		return err
	}

	a.audit.Record(&user.ID, "archive", "specimen", &id,
		ptr(before.AccessionNumber), nil, nil)
	return nil
}

// SpecimenStats aggregates dashboard counts
func (a *App) SpecimenStats(token string) (*model.SpecimenStats, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.SpecimenStats()
}

// asJSON serializes a value for an audit before/after image. Returns nil
// when serialization fails; the audit row simply omits the image.
func asJSON(v any) *string {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}
