package commands

import (
	"github.com/jnowat/SteloPTC/internal/model"
)

// LogError records a client-reported failure. The token is soft-validated:
// a valid session attributes the report, but error reporting must work
// even when the session is broken, so an invalid token only drops the
// attribution.
func (a *App) LogError(token string, req *model.CreateErrorLogRequest) (*model.ErrorLog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var userID, username *string
	if user, err := a.guard.Validate(token); err == nil {
		userID = &user.ID
		username = &user.Username
	}

	return a.store.InsertErrorLog(req, userID, username)
}

// ListErrorLogs returns a filtered page of error reports
func (a *App) ListErrorLogs(token string, params *model.ErrorLogSearchParams) (*model.Paginated[model.ErrorLog], error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.SearchErrorLogs(params)
}

// UnreadErrorCount returns the number of unread error reports
func (a *App) UnreadErrorCount(token string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return 0, err
	}
	return a.store.UnreadErrorCount()
}

// MarkErrorRead flags one report as read
func (a *App) MarkErrorRead(token, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return err
	}
	return a.store.MarkErrorRead(id)
}

// ClearErrorLogs deletes all error reports. Managing roles only.
func (a *App) ClearErrorLogs(token string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireManage(token)
	if err != nil {
		return 0, err
	}

	n, err := a.store.ClearErrorLogs()
	if err != nil {
		return 0, err
	}

	a.audit.Record(&user.ID, "clear", "error_logs", nil, nil, nil, nil)
	return n, nil
}
