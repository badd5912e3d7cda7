package model

// AuditEntry is one row of the append-only action log.
type AuditEntry struct {
	ID         string  `json:"id"`
	UserID     *string `json:"user_id,omitempty"`
	Username   *string `json:"username,omitempty"`
	Action     string  `json:"action"`
	EntityType string  `json:"entity_type"`
	EntityID   *string `json:"entity_id,omitempty"`
	OldValue   *string `json:"old_value,omitempty"`
	NewValue   *string `json:"new_value,omitempty"`
	Details    *string `json:"details,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type AuditSearchParams struct {
	UserID     *string `json:"user_id,omitempty"`
	EntityType *string `json:"entity_type,omitempty"`
	EntityID   *string `json:"entity_id,omitempty"`
	Action     *string `json:"action,omitempty"`
	FromDate   *string `json:"from_date,omitempty"`
	ToDate     *string `json:"to_date,omitempty"`
	Page       *int    `json:"page,omitempty"`
	PerPage    *int    `json:"per_page,omitempty"`
}
