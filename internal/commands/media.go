package commands

import (
	"fmt"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/util"
)

// ListMediaBatches returns all batches with their hormone additions
func (a *App) ListMediaBatches(token string) ([]model.MediaBatch, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.ListMediaBatches()
}

// GetMediaBatch fetches one batch
func (a *App) GetMediaBatch(token, id string) (*model.MediaBatch, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}

	mb, err := a.store.GetMediaBatch(id)
	if err != nil {
		return nil, err
	}
	if mb == nil {
		return nil, util.ErrNotFound
	}
	return mb, nil
}

// CreateMediaBatch registers a prepared batch. Reagents drawn from
// inventory are deducted in the same transaction.
func (a *App) CreateMediaBatch(token string, req *model.CreateMediaBatchRequest) (*model.MediaBatch, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	mb, deductions, err := a.store.CreateMediaBatch(req, &user.ID)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "create", "media_batch", &mb.ID, nil, ptr(mb.BatchID), nil)
	for _, d := range deductions {
		a.audit.Record(&user.ID, "deduct_stock", "inventory", &d.ItemID,
			ptr(fmt.Sprintf("%.2f", d.OldStock)),
			ptr(fmt.Sprintf("%.2f", d.NewStock)),
			ptr("used in media batch "+mb.BatchID))
	}
	return mb, nil
}

// UpdateMediaBatch applies a partial update and returns the fresh row
func (a *App) UpdateMediaBatch(token string, req *model.UpdateMediaBatchRequest) (*model.MediaBatch, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	if err := a.store.UpdateMediaBatch(req); err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "update", "media_batch", &req.ID, nil, nil, nil)
	return a.store.GetMediaBatch(req.ID)
}

// DeleteMediaBatch removes a batch outright. Managing roles only.
func (a *App) DeleteMediaBatch(token, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireManage(token)
	if err != nil {
		return err
	}

	before, err := a.store.GetMediaBatch(id)
	if err != nil {
		return err
	}
	if before == nil {
		return util.ErrNotFound
	}

	if err := a.store.DeleteMediaBatch(id); err != nil {
		return err
	}

	a.audit.Record(&user.ID, "delete", "media_batch", &id, ptr(before.BatchID), nil, nil)
	return nil
}
