package commands

import (
	"fmt"

	"github.com/jnowat/SteloPTC/internal/model"
)

// ListSubcultures returns a specimen's passage history
func (a *App) ListSubcultures(token, specimenID string) ([]model.Subculture, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.ListSubcultures(specimenID)
}

// CreateSubculture records a passage. The store assigns the passage
// number, bumps the specimen's counter, and moves the specimen when a
// destination location is given, all atomically.
func (a *App) CreateSubculture(token string, req *model.CreateSubcultureRequest) (*model.Subculture, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	sc, err := a.store.CreateSubculture(req, &user.ID)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "create", "subculture", &sc.ID, nil,
		ptr(fmt.Sprintf("passage %d", sc.PassageNumber)), ptr(sc.SpecimenID))
	return sc, nil
}

// UpdateSubculture amends the free-text and vessel fields of a passage
// record
func (a *App) UpdateSubculture(token string, req *model.UpdateSubcultureRequest) (*model.Subculture, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	if err := a.store.UpdateSubculture(req); err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "update", "subculture", &req.ID, nil, nil, nil)
	return a.store.GetSubculture(req.ID)
}
