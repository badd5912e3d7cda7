package model

// Reminder is a dated task, optionally tied to a specimen and optionally
// recurring.
type Reminder struct {
	ID                string  `json:"id"`
	SpecimenID        *string `json:"specimen_id,omitempty"`
	SpecimenAccession *string `json:"specimen_accession,omitempty"`
	Title             string  `json:"title"`
	Description       *string `json:"description,omitempty"`
	ReminderType      string  `json:"reminder_type"`
	DueDate           string  `json:"due_date"`
	IsRecurring       bool    `json:"is_recurring"`
	RecurrenceDays    *int    `json:"recurrence_days,omitempty"`
	RecurrenceRule    *string `json:"recurrence_rule,omitempty"`
	Status            string  `json:"status"`
	SnoozeCount       int     `json:"snooze_count"`
	Urgency           *string `json:"urgency,omitempty"`
	AssignedTo        *string `json:"assigned_to,omitempty"`
	AssignedName      *string `json:"assigned_name,omitempty"`
	CreatedBy         *string `json:"created_by,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type CreateReminderRequest struct {
	SpecimenID     *string `json:"specimen_id,omitempty"`
	Title          string  `json:"title"`
	Description    *string `json:"description,omitempty"`
	ReminderType   *string `json:"reminder_type,omitempty"`
	DueDate        string  `json:"due_date"`
	IsRecurring    *bool   `json:"is_recurring,omitempty"`
	RecurrenceDays *int    `json:"recurrence_days,omitempty"`
	Urgency        *string `json:"urgency,omitempty"`
	AssignedTo     *string `json:"assigned_to,omitempty"`
}

type UpdateReminderRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Urgency     *string `json:"urgency,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	Status      *string `json:"status,omitempty"`
}
