package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/query"
	"github.com/jnowat/SteloPTC/internal/util"
)

const reminderSelect = `
	SELECT r.id, r.specimen_id, s.accession_number, r.title, r.description,
	       r.reminder_type, r.due_date, r.is_recurring, r.recurrence_days,
	       r.recurrence_rule, r.status, r.snooze_count, r.urgency,
	       r.assigned_to, u.display_name, r.created_by, r.created_at, r.updated_at
	FROM reminders r
	LEFT JOIN specimens s ON s.id = r.specimen_id
	LEFT JOIN users u ON u.id = r.assigned_to
`

func scanReminder(row interface{ Scan(...any) error }) (*model.Reminder, error) {
	r := &model.Reminder{}
	err := row.Scan(
		&r.ID, &r.SpecimenID, &r.SpecimenAccession, &r.Title, &r.Description,
		&r.ReminderType, &r.DueDate, &r.IsRecurring, &r.RecurrenceDays,
		&r.RecurrenceRule, &r.Status, &r.SnoozeCount, &r.Urgency,
		&r.AssignedTo, &r.AssignedName, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListReminders returns all reminders ordered by due date
func (s *Store) ListReminders() ([]model.Reminder, error) {
	rows, err := s.db.Query(reminderSelect + "ORDER BY r.due_date ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var list []model.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		list = append(list, *r)
	}
	return list, rows.Err()
}

// ActiveReminders returns active and snoozed reminders due within the
// next 7 days, most urgent first.
func (s *Store) ActiveReminders() ([]model.Reminder, error) {
	rows, err := s.db.Query(reminderSelect + `
		WHERE r.status IN ('active', 'snoozed') AND r.due_date <= date('now', '+7 days')
		ORDER BY r.urgency DESC, r.due_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active reminders: %w", err)
	}
	defer rows.Close()

	list := []model.Reminder{}
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		list = append(list, *r)
	}
	return list, rows.Err()
}

// GetReminder retrieves one reminder, or nil when absent
func (s *Store) GetReminder(id string) (*model.Reminder, error) {
	r, err := scanReminder(s.db.QueryRow(reminderSelect+"WHERE r.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return r, nil
}

// CreateReminder inserts a reminder and returns it
func (s *Store) CreateReminder(req *model.CreateReminderRequest, createdBy *string) (*model.Reminder, error) {
	id := uuid.NewString()
	recurring := req.IsRecurring != nil && *req.IsRecurring

	_, err := s.db.Exec(`
		INSERT INTO reminders (
			id, specimen_id, title, description, reminder_type, due_date,
			is_recurring, recurrence_days, urgency, assigned_to, created_by
		) VALUES (?, ?, ?, ?, COALESCE(?, 'custom'), ?, ?, ?, COALESCE(?, 'normal'), ?, ?)
	`, id, req.SpecimenID, req.Title, req.Description, req.ReminderType, req.DueDate,
		recurring, req.RecurrenceDays, req.Urgency, req.AssignedTo, createdBy)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create reminder: %v", util.ErrConstraint, err)
	}

	return s.GetReminder(id)
}

// UpdateReminder applies a partial update
func (s *Store) UpdateReminder(req *model.UpdateReminderRequest) error {
	var u query.Update
	query.SetIf(&u, "title", req.Title)
	query.SetIf(&u, "description", req.Description)
	query.SetIf(&u, "due_date", req.DueDate)
	query.SetIf(&u, "urgency", req.Urgency)
	query.SetIf(&u, "status", req.Status)
	query.SetIf(&u, "assigned_to", req.AssignedTo)

	clause, args, err := u.Clause(req.ID)
	if err != nil {
		return err
	}

	res, err := s.db.Exec("UPDATE reminders "+clause+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DismissReminder marks a reminder dismissed. Dismissing an already
// dismissed reminder is a no-op, not an error.
func (s *Store) DismissReminder(id string) error {
	_, err := s.db.Exec(`
		UPDATE reminders SET status = 'dismissed', updated_at = datetime('now') WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to dismiss reminder: %w", err)
	}
	return nil
}

// SnoozeReminder pushes the due date back one day and counts the snooze.
// After the second snooze the urgency escalates to critical.
func (s *Store) SnoozeReminder(id string) error {
	_, err := s.db.Exec(`
		UPDATE reminders
		SET status = 'snoozed', snooze_count = snooze_count + 1,
		    due_date = date(due_date, '+1 day'), updated_at = datetime('now')
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to snooze reminder: %w", err)
	}

	var count int
	err = s.db.QueryRow("SELECT snooze_count FROM reminders WHERE id = ?", id).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to read snooze count: %w", err)
	}

	if count >= 2 {
		if _, err := s.db.Exec("UPDATE reminders SET urgency = 'critical' WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to escalate reminder: %w", err)
		}
	}

	return nil
}
