// Package query builds parameterized SQL fragments for optional filters and
// partial updates. Caller-supplied values are always bound positionally and
// never concatenated into the statement text.
package query

import (
	"fmt"
	"strings"

	"github.com/jnowat/SteloPTC/internal/util"
)

// Where accumulates optional filter predicates. Predicates are ANDed
// together; an empty builder renders to an empty clause.
type Where struct {
	conds []string
	args  []any
}

// Add appends a raw predicate expression with its bound arguments. The
// expression must contain one '?' placeholder per argument.
func (w *Where) Add(expr string, args ...any) {
	w.conds = append(w.conds, expr)
	w.args = append(w.args, args...)
}

// Eq appends a column = value predicate.
func (w *Where) Eq(column string, value any) {
	w.Add(column+" = ?", value)
}

// Like appends a substring match predicate.
func (w *Where) Like(column string, value string) {
	w.Add(column+" LIKE ?", "%"+value+"%")
}

// Gte appends a column >= value predicate.
func (w *Where) Gte(column string, value any) {
	w.Add(column+" >= ?", value)
}

// Lte appends a column <= value predicate.
func (w *Where) Lte(column string, value any) {
	w.Add(column+" <= ?", value)
}

// Clause renders the WHERE clause, or an empty string when no predicates
// were added.
func (w *Where) Clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// Args returns the bound values in placeholder order, with any extra values
// (typically LIMIT/OFFSET) appended.
func (w *Where) Args(extra ...any) []any {
	args := make([]any, 0, len(w.args)+len(extra))
	args = append(args, w.args...)
	args = append(args, extra...)
	return args
}

// Update accumulates partial-update assignments. Only fields the caller
// explicitly set are assigned; rendering an empty builder is an error so
// no-op UPDATE statements are never issued.
type Update struct {
	sets []string
	args []any
}

// Set assigns column = value.
func (u *Update) Set(column string, value any) {
	u.sets = append(u.sets, column+" = ?")
	u.args = append(u.args, value)
}

// SetIf assigns column = *value when value is present.
func SetIf[T any](u *Update, column string, value *T) {
	if value != nil {
		u.Set(column, *value)
	}
}

// SetRaw appends a server-side assignment expression with no bound value.
func (u *Update) SetRaw(expr string) {
	u.sets = append(u.sets, expr)
}

// Empty reports whether no assignments were added.
func (u *Update) Empty() bool {
	return len(u.sets) == 0
}

// Clause renders the SET clause with updated_at stamped server-side, and
// returns the bound values with the given key values appended for the
// statement's WHERE part. Fails when no fields were set.
func (u *Update) Clause(keys ...any) (string, []any, error) {
	if u.Empty() {
		return "", nil, util.ErrNoFields
	}
	sets := append(append([]string{}, u.sets...), "updated_at = datetime('now')")
	args := make([]any, 0, len(u.args)+len(keys))
	args = append(args, u.args...)
	args = append(args, keys...)
	return "SET " + strings.Join(sets, ", "), args, nil
}

// Pagination computes 1-based page windows.
type Pagination struct {
	Page    int
	PerPage int
}

// NewPagination applies the defaults (page 1, 50 per page) for absent or
// non-positive inputs.
func NewPagination(page, perPage *int) Pagination {
	pg := Pagination{Page: 1, PerPage: 50}
	if page != nil && *page > 0 {
		pg.Page = *page
	}
	if perPage != nil && *perPage > 0 {
		pg.PerPage = *perPage
	}
	return pg
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit returns the page size.
func (p Pagination) Limit() int {
	return p.PerPage
}

// Pages returns the total page count for the given row total.
func (p Pagination) Pages(total int64) (int, error) {
	if p.PerPage <= 0 {
		return 0, fmt.Errorf("per_page must be positive, got %d", p.PerPage)
	}
	return int((total + int64(p.PerPage) - 1) / int64(p.PerPage)), nil
}
