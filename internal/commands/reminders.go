package commands

import (
	"github.com/jnowat/SteloPTC/internal/model"
)

// ListReminders returns all reminders in due order
func (a *App) ListReminders(token string) ([]model.Reminder, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.ListReminders()
}

// ActiveReminders returns reminders due within the next 7 days
func (a *App) ActiveReminders(token string) ([]model.Reminder, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSession(token); err != nil {
		return nil, err
	}
	return a.store.ActiveReminders()
}

// CreateReminder adds a dated task
func (a *App) CreateReminder(token string, req *model.CreateReminderRequest) (*model.Reminder, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	r, err := a.store.CreateReminder(req, &user.ID)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "create", "reminder", &r.ID, nil, ptr(r.Title), nil)
	return r, nil
}

// UpdateReminder applies a partial update and returns the fresh row
func (a *App) UpdateReminder(token string, req *model.UpdateReminderRequest) (*model.Reminder, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireWrite(token)
	if err != nil {
		return nil, err
	}

	if err := a.store.UpdateReminder(req); err != nil {
		return nil, err
	}

	a.audit.Record(&user.ID, "update", "reminder", &req.ID, nil, nil, nil)
	return a.store.GetReminder(req.ID)
}

// DismissReminder marks a reminder done. Any valid session may dismiss;
// reminders are a shared queue, not per-user.
func (a *App) DismissReminder(token, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireSession(token)
	if err != nil {
		return err
	}

	if err := a.store.DismissReminder(id); err != nil {
		return err
	}

	a.audit.Record(&user.ID, "dismiss", "reminder", &id, nil, nil, nil)
	return nil
}

// SnoozeReminder pushes a reminder back one day. Repeated snoozing
// escalates the urgency.
func (a *App) SnoozeReminder(token, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireSession(token)
	if err != nil {
		return err
	}

	if err := a.store.SnoozeReminder(id); err != nil {
		return err
	}

	a.audit.Record(&user.ID, "snooze", "reminder", &id, nil, nil, nil)
	return nil
}
