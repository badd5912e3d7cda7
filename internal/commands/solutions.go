package commands

import (
	"fmt"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/util"
)

// ListPreparedSolutions returns all working solutions
func (a *App) ListPreparedSolutions(token string) ([]model.PreparedSolution, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.ListPreparedSolutions()
}

// CreatePreparedSolution registers a working solution, deducting the
// source reagent's stock when an amount is given.
func (a *App) CreatePreparedSolution(token string, req *model.CreatePreparedSolutionRequest) (*model.PreparedSolution, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	ps, deduction, err := a.store.CreatePreparedSolution(req, &user.DisplayName)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "create", "prepared_solution", &ps.ID, nil, ptr(ps.Name), nil)
	if deduction != nil {
		a.audit.Record(&user.ID, "deduct_stock", "inventory", &deduction.ItemID,
			ptr(fmt.Sprintf("%.2f", deduction.OldStock)),
			ptr(fmt.Sprintf("%.2f", deduction.NewStock)),
			ptr("used in solution "+ps.Name))
	}
	return ps, nil
}

// UpdatePreparedSolution applies a partial update and returns the fresh row
func (a *App) UpdatePreparedSolution(token string, req *model.UpdatePreparedSolutionRequest) (*model.PreparedSolution, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	if err := a.store.UpdatePreparedSolution(req); err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "update", "prepared_solution", &req.ID, nil, nil, nil)
	return a.store.GetPreparedSolution(req.ID)
}

// DeletePreparedSolution removes a solution. Managing roles only.
func (a *App) DeletePreparedSolution(token, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireManage(token)
	if err != nil {
		return err
	}

	before, err := a.store.GetPreparedSolution(id)
	if err != nil {
		return err
	}
	if before == nil {
		return util.ErrNotFound
	}

	if err := a.store.DeletePreparedSolution(id); err != nil {
		return err
	}

	a.audit.Record(&user.ID, "delete", "prepared_solution", &id, ptr(before.Name), nil, nil)
	return nil
}
