package query

import (
	"errors"
	"testing"

	"github.com/jnowat/SteloPTC/internal/util"
)

func TestWhereEmpty(t *testing.T) {
	var w Where
	if w.Clause() != "" {
		t.Errorf("expected empty clause, got %q", w.Clause())
	}
	if len(w.Args()) != 0 {
		t.Errorf("expected no args, got %v", w.Args())
	}
}

func TestWherePredicates(t *testing.T) {
	var w Where
	w.Eq("s.species_id", "sp-1")
	w.Like("s.notes", "callus")
	w.Gte("s.created_at", "2025-01-01")
	w.Add("s.is_archived = 0")

	want := "WHERE s.species_id = ? AND s.notes LIKE ? AND s.created_at >= ? AND s.is_archived = 0"
	if w.Clause() != want {
		t.Errorf("clause mismatch:\n got %q\nwant %q", w.Clause(), want)
	}

	args := w.Args(50, 0)
	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(args))
	}
	if args[1] != "%callus%" {
		t.Errorf("expected LIKE arg to be wrapped, got %v", args[1])
	}
	if args[3] != 50 || args[4] != 0 {
		t.Errorf("expected extra args appended in order, got %v", args)
	}
}

func TestUpdateEmptyFails(t *testing.T) {
	var u Update
	_, _, err := u.Clause("id-1")
	if !errors.Is(err, util.ErrNoFields) {
		t.Errorf("expected ErrNoFields, got %v", err)
	}
}

func TestUpdateClause(t *testing.T) {
	var u Update
	u.Set("stage", "callus")
	notes := "transferred"
	SetIf(&u, "notes", &notes)
	SetIf[string](&u, "location", nil)
	u.SetRaw("quarantine_flag = 0")

	clause, args, err := u.Clause("spec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SET stage = ?, notes = ?, quarantine_flag = 0, updated_at = datetime('now')"
	if clause != want {
		t.Errorf("clause mismatch:\n got %q\nwant %q", clause, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args (2 sets + key), got %d: %v", len(args), args)
	}
	if args[2] != "spec-1" {
		t.Errorf("expected key appended last, got %v", args)
	}
}

func TestPaginationDefaults(t *testing.T) {
	pg := NewPagination(nil, nil)
	if pg.Page != 1 || pg.PerPage != 50 {
		t.Errorf("expected defaults 1/50, got %d/%d", pg.Page, pg.PerPage)
	}
	if pg.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", pg.Offset())
	}

	page, per := 3, 25
	pg = NewPagination(&page, &per)
	if pg.Offset() != 50 || pg.Limit() != 25 {
		t.Errorf("expected offset 50 limit 25, got %d/%d", pg.Offset(), pg.Limit())
	}
}

func TestPaginationPages(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{105, 50, 3},
		{100, 50, 2},
		{1, 50, 1},
		{0, 50, 0},
	}
	for _, c := range cases {
		pg := Pagination{Page: 1, PerPage: c.perPage}
		got, err := pg.Pages(c.total)
		if err != nil {
			t.Fatalf("Pages(%d): %v", c.total, err)
		}
		if got != c.want {
			t.Errorf("Pages(%d) with per_page %d = %d, want %d", c.total, c.perPage, got, c.want)
		}
	}

	bad := Pagination{Page: 1, PerPage: 0}
	if _, err := bad.Pages(10); err == nil {
		t.Error("expected error for per_page = 0")
	}
}
