package commands

import (
	"fmt"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/util"
)

// ListInventory returns all inventory items
func (a *App) ListInventory(token string) ([]model.InventoryItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.ListInventory()
}

// CreateInventoryItem adds a tracked supply
func (a *App) CreateInventoryItem(token string, req *model.CreateInventoryItemRequest) (*model.InventoryItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	item, err := a.store.CreateInventoryItem(req)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "create", "inventory", &item.ID, nil, ptr(item.Name), nil)
	return item, nil
}

// UpdateInventoryItem applies a partial update and returns the fresh row
func (a *App) UpdateInventoryItem(token string, req *model.UpdateInventoryItemRequest) (*model.InventoryItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	if err := a.store.UpdateInventoryItem(req); err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "update", "inventory", &req.ID, nil, nil, nil)
	return a.store.GetInventoryItem(req.ID)
}

// DeleteInventoryItem removes an item. Managing roles only.
func (a *App) DeleteInventoryItem(token, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireManage(token)
	if err != nil {
		return err
	}

	before, err := a.store.GetInventoryItem(id)
	if err != nil {
		return err
	}
	if before == nil {
		return util.ErrNotFound
	}

	if err := a.store.DeleteInventoryItem(id); err != nil {
		return err
	}

	a.audit.Record(&user.ID, "delete", "inventory", &id, ptr(before.Name), nil, nil)
	return nil
}

// AdjustStock applies a signed stock change. A change that would drive
// the stock negative is rejected whole. The audit entry carries the old
// and new quantities.
func (a *App) AdjustStock(token string, req *model.AdjustStockRequest) (*model.InventoryItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	old, item, err := a.store.AdjustStock(req.ID, req.Adjustment)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "adjust_stock", "inventory", &req.ID,
		ptr(fmt.Sprintf("%.2f", old)),
		ptr(fmt.Sprintf("%.2f", item.CurrentStock)),
		req.Reason)
	return item, nil
}

// LowStockAlerts lists items at or below their thresholds
func (a *App) LowStockAlerts(token string) ([]model.LowStockAlert, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.LowStockAlerts()
}
