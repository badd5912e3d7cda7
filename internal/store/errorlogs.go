package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/query"
	"github.com/jnowat/SteloPTC/internal/util"
)

// InsertErrorLog records a client-reported failure
func (s *Store) InsertErrorLog(req *model.CreateErrorLogRequest, userID, username *string) (*model.ErrorLog, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO error_logs (id, title, message, module, severity, user_id, username, form_payload, stack_trace)
		VALUES (?, ?, ?, ?, COALESCE(?, 'error'), ?, ?, ?, ?)
	`, id, req.Title, req.Message, req.Module, req.Severity, userID, username, req.FormPayload, req.StackTrace)
	if err != nil {
		return nil, fmt.Errorf("failed to insert error log: %w", err)
	}
	return s.getErrorLog(id)
}

func (s *Store) getErrorLog(id string) (*model.ErrorLog, error) {
	e := &model.ErrorLog{}
	err := s.db.QueryRow(`
		SELECT id, timestamp, title, message, module, severity, user_id, username,
		       form_payload, stack_trace, is_read
		FROM error_logs WHERE id = ?
	`, id).Scan(&e.ID, &e.Timestamp, &e.Title, &e.Message, &e.Module, &e.Severity,
		&e.UserID, &e.Username, &e.FormPayload, &e.StackTrace, &e.IsRead)
	if err != nil {
		return nil, fmt.Errorf("failed to get error log: %w", err)
	}
	return e, nil
}

// SearchErrorLogs returns a filtered, paginated slice of error reports,
// newest first.
func (s *Store) SearchErrorLogs(params *model.ErrorLogSearchParams) (*model.Paginated[model.ErrorLog], error) {
	var w query.Where

	if params.Severity != nil {
		w.Eq("severity", *params.Severity)
	}
	if params.Module != nil {
		w.Eq("module", *params.Module)
	}
	if params.UnreadOnly {
		w.Add("is_read = 0")
	}

	var total int64
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM error_logs "+w.Clause(), w.Args()...,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count error logs: %w", err)
	}

	pg := query.NewPagination(params.Page, params.PerPage)
	pages, err := pg.Pages(total)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, timestamp, title, message, module, severity, user_id, username,
		       form_payload, stack_trace, is_read
		FROM error_logs
		`+w.Clause()+`
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`, w.Args(pg.Limit(), pg.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("failed to query error logs: %w", err)
	}
	defer rows.Close()

	items := []model.ErrorLog{}
	for rows.Next() {
		var e model.ErrorLog
		err := rows.Scan(&e.ID, &e.Timestamp, &e.Title, &e.Message, &e.Module, &e.Severity,
			&e.UserID, &e.Username, &e.FormPayload, &e.StackTrace, &e.IsRead)
		if err != nil {
			return nil, fmt.Errorf("failed to scan error log: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.Paginated[model.ErrorLog]{
		Items:      items,
		Total:      total,
		Page:       pg.Page,
		PerPage:    pg.PerPage,
		TotalPages: pages,
	}, nil
}

// UnreadErrorCount returns the number of unread error reports
func (s *Store) UnreadErrorCount() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM error_logs WHERE is_read = 0").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread errors: %w", err)
	}
	return count, nil
}

// MarkErrorRead flags one error report as read
func (s *Store) MarkErrorRead(id string) error {
	res, err := s.db.Exec("UPDATE error_logs SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark error read: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ClearErrorLogs deletes all error reports and returns how many were
// removed.
func (s *Store) ClearErrorLogs() (int64, error) {
	res, err := s.db.Exec("DELETE FROM error_logs")
	if err != nil {
		return 0, fmt.Errorf("failed to clear error logs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
