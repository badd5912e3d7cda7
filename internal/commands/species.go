package commands

import (
	"github.com/jnowat/SteloPTC/internal/model"
)

// ListSpecies returns the species master list
func (a *App) ListSpecies(token string) ([]model.Species, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.ListSpecies()
}

// CreateSpecies adds a species entry. Managing roles only, since species
// codes feed accession numbers.
func (a *App) CreateSpecies(token string, req *model.CreateSpeciesRequest) (*model.Species, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireManage(token)
	if err != nil {
		return nil, err
	}

	sp, err := a.store.CreateSpecies(req)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "create", "species", &sp.ID, nil, ptr(sp.SpeciesCode), nil)
	return sp, nil
}

// UpdateSpecies applies a partial update and returns the fresh row.
// Managing roles only.
func (a *App) UpdateSpecies(token string, req *model.UpdateSpeciesRequest) (*model.Species, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireManage(token)
	if err != nil {
		return nil, err
	}

	if err := a.store.UpdateSpecies(req); err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "update", "species", &req.ID, nil, nil, nil)
	return a.store.GetSpecies(req.ID)
}
