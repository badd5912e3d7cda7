package audit

import (
	"os"
	"testing"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/store"
)

func openTestStore(t *testing.T, name string) *store.Store {
	t.Helper()
	t.Cleanup(func() {
		os.Remove(name)
		os.Remove(name + "-shm")
		os.Remove(name + "-wal")
	})

	s, err := store.Open(name)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndSearch(t *testing.T) {
	s := openTestStore(t, "test-audit.db")
	rec := NewRecorder(s)

	entity := "spec-1"
	details := "created for test"
	if err := rec.Record(nil, "create", "specimen", &entity, nil, nil, &details); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	page, err := s.SearchAuditLog(&model.AuditSearchParams{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1 entry, got %d", page.Total)
	}
	e := page.Items[0]
	if e.Action != "create" || e.EntityType != "specimen" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.UserID != nil {
		t.Error("system action must record a null user")
	}
}

func TestRecordSurvivesMissingTable(t *testing.T) {
	s := openTestStore(t, "test-audit-broken.db")
	rec := NewRecorder(s)

	// Simulate a broken sink: the entry cannot be written, but Record
	// must return rather than panic so callers can ignore the error.
	if _, err := s.DB().Exec("DROP TABLE audit_log"); err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	if err := rec.Record(nil, "create", "specimen", nil, nil, nil, nil); err == nil {
		t.Error("expected an error from the broken sink")
	}
}

func TestSearchFilters(t *testing.T) {
	s := openTestStore(t, "test-audit-filter.db")
	rec := NewRecorder(s)

	for i := 0; i < 3; i++ {
		rec.Record(nil, "create", "specimen", nil, nil, nil, nil)
	}
	rec.Record(nil, "update", "reminder", nil, nil, nil, nil)

	action := "create"
	page, err := s.SearchAuditLog(&model.AuditSearchParams{Action: &action})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("expected 3 create entries, got %d", page.Total)
	}

	entityType := "reminder"
	page, err = s.SearchAuditLog(&model.AuditSearchParams{EntityType: &entityType})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("expected 1 reminder entry, got %d", page.Total)
	}
}
