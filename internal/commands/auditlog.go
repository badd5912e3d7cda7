package commands

import (
	"github.com/jnowat/SteloPTC/internal/model"
)

// GetAuditLog returns a filtered page of the audit trail. Managing roles
// only.
func (a *App) GetAuditLog(token string, params *model.AuditSearchParams) (*model.Paginated[model.AuditEntry], error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireManage(token); err != nil {
		return nil, err
	}
	return a.store.SearchAuditLog(params)
}
