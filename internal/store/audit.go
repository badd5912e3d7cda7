package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/query"
)

// InsertAuditEntry appends one row to the audit log
func (s *Store) InsertAuditEntry(userID *string, action, entityType string, entityID, oldValue, newValue, details *string) error {
	_, err := s.db.Exec(`
		INSERT INTO audit_log (id, user_id, action, entity_type, entity_id, old_value, new_value, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), userID, action, entityType, entityID, oldValue, newValue, details)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// SearchAuditLog returns a filtered, paginated slice of the audit trail,
// newest first.
func (s *Store) SearchAuditLog(params *model.AuditSearchParams) (*model.Paginated[model.AuditEntry], error) {
	var w query.Where

	if params.UserID != nil {
		w.Eq("a.user_id", *params.UserID)
	}
	if params.EntityType != nil {
		w.Eq("a.entity_type", *params.EntityType)
	}
	if params.EntityID != nil {
		w.Eq("a.entity_id", *params.EntityID)
	}
	if params.Action != nil {
		w.Eq("a.action", *params.Action)
	}
	if params.FromDate != nil {
		w.Gte("a.created_at", *params.FromDate)
	}
	if params.ToDate != nil {
		w.Lte("a.created_at", *params.ToDate)
	}

	var total int64
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM audit_log a "+w.Clause(), w.Args()...,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit entries: %w", err)
	}

	pg := query.NewPagination(params.Page, params.PerPage)
	pages, err := pg.Pages(total)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT a.id, a.user_id, u.username, a.action, a.entity_type, a.entity_id,
		       a.old_value, a.new_value, a.details, a.created_at
		FROM audit_log a
		LEFT JOIN users u ON u.id = a.user_id
		`+w.Clause()+`
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ? OFFSET ?
	`, w.Args(pg.Limit(), pg.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	items := []model.AuditEntry{}
	for rows.Next() {
		var e model.AuditEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Action, &e.EntityType,
			&e.EntityID, &e.OldValue, &e.NewValue, &e.Details, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.Paginated[model.AuditEntry]{
		Items:      items,
		Total:      total,
		Page:       pg.Page,
		PerPage:    pg.PerPage,
		TotalPages: pages,
	}, nil
}
