package store

import (
	"errors"
	"os"
	"testing"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/util"
)

func openTestStore(t *testing.T, name string) *Store {
	t.Helper()
	t.Cleanup(func() {
		os.Remove(name)
		os.Remove(name + "-shm")
		os.Remove(name + "-wal")
	})

	s, err := Open(name)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreOpenAndMigrate(t *testing.T) {
	store := openTestStore(t, "test-migrate.db")

	version, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to get schema version: %v", err)
	}

	want := migrations[len(migrations)-1].version
	if version != want {
		t.Errorf("expected schema version %d, got %d", want, version)
	}

	tables := []string{
		"users", "sessions", "species", "projects", "specimens", "tags",
		"specimen_tags", "media_batches", "media_hormones", "subcultures",
		"attachments", "reminders", "compliance_records", "inventory_items",
		"audit_log", "prepared_solutions", "error_logs", "schema_version",
	}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}

	// Running migrations again must be a no-op
	if err := store.Migrate(); err != nil {
		t.Fatalf("re-running migrations failed: %v", err)
	}

	after, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to re-read schema version: %v", err)
	}
	if after != version {
		t.Errorf("schema version changed on re-migrate: %d -> %d", version, after)
	}

	// The v2 rebuild must leave employee_id on specimens
	var cols int
	err = store.db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('specimens') WHERE name = 'employee_id'
	`).Scan(&cols)
	if err != nil {
		t.Fatalf("failed to inspect specimens columns: %v", err)
	}
	if cols != 1 {
		t.Error("expected specimens.employee_id after migration")
	}
}

func TestSeedIdempotent(t *testing.T) {
	store := openTestStore(t, "test-seed.db")

	if err := store.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := store.Seed(); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	var users, species int64
	if err := store.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		t.Fatal(err)
	}
	if err := store.db.QueryRow("SELECT COUNT(*) FROM species").Scan(&species); err != nil {
		t.Fatal(err)
	}

	if users != 1 {
		t.Errorf("expected 1 seeded user, got %d", users)
	}
	if species != int64(len(defaultSpecies)) {
		t.Errorf("expected %d seeded species, got %d", len(defaultSpecies), species)
	}

	admin, err := store.GetUserByUsername("admin")
	if err != nil {
		t.Fatalf("failed to get admin: %v", err)
	}
	if admin == nil {
		t.Fatal("expected seeded admin user")
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("expected admin role, got %s", admin.Role)
	}
}

func seedSpecimen(t *testing.T, store *Store, date string) *model.Specimen {
	t.Helper()
	species, err := store.ListSpecies()
	if err != nil || len(species) == 0 {
		t.Fatalf("no species available: %v", err)
	}
	sp, err := store.CreateSpecimen(&model.CreateSpecimenRequest{
		SpeciesID:      species[0].ID,
		Stage:          "explant",
		InitiationDate: date,
	}, nil)
	if err != nil {
		t.Fatalf("failed to create specimen: %v", err)
	}
	return sp
}

func TestAccessionSequence(t *testing.T) {
	store := openTestStore(t, "test-accession.db")
	if err := store.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	first := seedSpecimen(t, store, "2025-03-01")
	second := seedSpecimen(t, store, "2025-03-01")

	if first.AccessionNumber == second.AccessionNumber {
		t.Fatalf("accession numbers must be unique, both got %s", first.AccessionNumber)
	}
	if first.AccessionNumber != "2025-03-01-ASP-OFF-001" {
		t.Errorf("unexpected first accession: %s", first.AccessionNumber)
	}
	if second.AccessionNumber != "2025-03-01-ASP-OFF-002" {
		t.Errorf("unexpected second accession: %s", second.AccessionNumber)
	}

	// Different date starts its own sequence
	other := seedSpecimen(t, store, "2025-04-01")
	if other.AccessionNumber != "2025-04-01-ASP-OFF-001" {
		t.Errorf("unexpected accession for new date: %s", other.AccessionNumber)
	}
}

func TestArchivePreservesRow(t *testing.T) {
	store := openTestStore(t, "test-archive.db")
	if err := store.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	sp := seedSpecimen(t, store, "2025-05-01")

	if err := store.ArchiveSpecimen(sp.ID); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	got, err := store.GetSpecimen(sp.ID)
	if err != nil {
		t.Fatalf("get after archive failed: %v", err)
	}
	if got == nil {
		t.Fatal("archived specimen must remain retrievable by id")
	}
	if !got.IsArchived {
		t.Error("expected is_archived after archive")
	}
	if got.ArchivedAt == nil {
		t.Error("expected archived_at to be set")
	}

	// Archiving again misses the is_archived = 0 predicate
	if err := store.ArchiveSpecimen(sp.ID); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double archive, got %v", err)
	}

	// Default search excludes archived rows
	page, err := store.SearchSpecimens(&model.SpecimenSearchParams{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for _, item := range page.Items {
		if item.ID == sp.ID {
			t.Error("archived specimen leaked into default search")
		}
	}
}

func TestSubculturePassageNumbers(t *testing.T) {
	store := openTestStore(t, "test-subculture.db")
	if err := store.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	sp := seedSpecimen(t, store, "2025-06-01")

	loc := "Rack B"
	for i := 1; i <= 3; i++ {
		req := &model.CreateSubcultureRequest{SpecimenID: sp.ID, Date: "2025-06-10"}
		if i == 3 {
			req.LocationTo = &loc
		}
		sc, err := store.CreateSubculture(req, nil)
		if err != nil {
			t.Fatalf("subculture %d failed: %v", i, err)
		}
		if sc.PassageNumber != i {
			t.Errorf("expected passage %d, got %d", i, sc.PassageNumber)
		}
	}

	got, err := store.GetSpecimen(sp.ID)
	if err != nil {
		t.Fatalf("get specimen failed: %v", err)
	}
	if got.SubcultureCount != 3 {
		t.Errorf("expected subculture_count 3, got %d", got.SubcultureCount)
	}
	if got.Location == nil || *got.Location != loc {
		t.Errorf("expected specimen moved to %q, got %v", loc, got.Location)
	}

	history, err := store.ListSubcultures(sp.ID)
	if err != nil {
		t.Fatalf("list subcultures failed: %v", err)
	}
	if len(history) != got.SubcultureCount {
		t.Errorf("history length %d disagrees with subculture_count %d", len(history), got.SubcultureCount)
	}
}

func TestSearchPagination(t *testing.T) {
	store := openTestStore(t, "test-pagination.db")
	if err := store.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	for i := 0; i < 105; i++ {
		seedSpecimen(t, store, "2025-07-01")
	}

	page, err := store.SearchSpecimens(&model.SpecimenSearchParams{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if page.Total != 105 {
		t.Errorf("expected total 105, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", page.TotalPages)
	}
	if len(page.Items) != 50 {
		t.Errorf("expected 50 items on page 1, got %d", len(page.Items))
	}

	three := 3
	last, err := store.SearchSpecimens(&model.SpecimenSearchParams{Page: &three})
	if err != nil {
		t.Fatalf("search page 3 failed: %v", err)
	}
	if len(last.Items) != 5 {
		t.Errorf("expected 5 items on page 3, got %d", len(last.Items))
	}
	if last.Total != page.Total {
		t.Errorf("total changed between pages: %d vs %d", page.Total, last.Total)
	}

	// A page past the end is empty, not an error
	four := 4
	past, err := store.SearchSpecimens(&model.SpecimenSearchParams{Page: &four})
	if err != nil {
		t.Fatalf("search page 4 failed: %v", err)
	}
	if len(past.Items) != 0 {
		t.Errorf("expected 0 items on page 4, got %d", len(past.Items))
	}
}

func TestAdjustStockNeverNegative(t *testing.T) {
	store := openTestStore(t, "test-stock.db")

	ten := 10.0
	item, err := store.CreateInventoryItem(&model.CreateInventoryItemRequest{
		Name: "Agar", Category: "media_ingredient", Unit: "g", CurrentStock: &ten,
	})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	// Over-draw fails and leaves the stock untouched
	_, _, err = store.AdjustStock(item.ID, -15)
	if !errors.Is(err, util.ErrConstraint) {
		t.Fatalf("expected ErrConstraint, got %v", err)
	}
	got, err := store.GetInventoryItem(item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentStock != 10 {
		t.Errorf("stock changed on failed adjustment: %v", got.CurrentStock)
	}

	// Draining to exactly zero succeeds
	old, after, err := store.AdjustStock(item.ID, -10)
	if err != nil {
		t.Fatalf("adjust to zero failed: %v", err)
	}
	if old != 10 {
		t.Errorf("expected old stock 10, got %v", old)
	}
	if after.CurrentStock != 0 {
		t.Errorf("expected stock 0, got %v", after.CurrentStock)
	}
}

func TestMediaBatchDeductsReagent(t *testing.T) {
	store := openTestStore(t, "test-media.db")

	five := 5.0
	item, err := store.CreateInventoryItem(&model.CreateInventoryItemRequest{
		Name: "BAP", Category: "hormone", Unit: "mg", CurrentStock: &five,
	})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	amount := 8.0 // more than in stock: clamp, don't fail
	batch, deductions, err := store.CreateMediaBatch(&model.CreateMediaBatchRequest{
		Name:            "MS + BAP",
		PreparationDate: "2025-07-15",
		Hormones: []model.MediaHormone{{
			HormoneName:         "BAP",
			ConcentrationMgPerL: 1.0,
			ReagentBatchID:      &item.ID,
			AmountUsed:          &amount,
		}},
	}, nil)
	if err != nil {
		t.Fatalf("create batch failed: %v", err)
	}

	if batch.BatchID != "MB-20250715-001" {
		t.Errorf("unexpected batch id: %s", batch.BatchID)
	}
	if len(batch.Hormones) != 1 {
		t.Fatalf("expected 1 hormone, got %d", len(batch.Hormones))
	}

	if len(deductions) != 1 {
		t.Fatalf("expected 1 deduction, got %d", len(deductions))
	}
	if deductions[0].ItemID != item.ID || deductions[0].OldStock != 5 || deductions[0].NewStock != 0 {
		t.Errorf("unexpected deduction: %+v", deductions[0])
	}

	got, err := store.GetInventoryItem(item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentStock != 0 {
		t.Errorf("expected clamped stock 0, got %v", got.CurrentStock)
	}
}

func TestResetPreservesUsersAndSpecies(t *testing.T) {
	store := openTestStore(t, "test-reset.db")
	if err := store.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	seedSpecimen(t, store, "2025-08-01")
	if _, err := store.CreateInventoryItem(&model.CreateInventoryItemRequest{
		Name: "Flask", Category: "vessel", Unit: "pcs",
	}); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	if err := store.ResetOperationalData(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	counts := map[string]int64{}
	for _, table := range []string{"specimens", "inventory_items", "users", "species", "tags"} {
		var n int64
		if err := store.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		counts[table] = n
	}

	if counts["specimens"] != 0 || counts["inventory_items"] != 0 {
		t.Errorf("operational tables not cleared: %v", counts)
	}
	if counts["users"] == 0 || counts["species"] == 0 || counts["tags"] == 0 {
		t.Errorf("reset must preserve users, species, and tags: %v", counts)
	}
}

func TestComplianceFlagsQuarantine(t *testing.T) {
	store := openTestStore(t, "test-flags.db")
	if err := store.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	sp := seedSpecimen(t, store, "2025-08-10")
	flag := true
	if err := store.UpdateSpecimen(&model.UpdateSpecimenRequest{
		ID: sp.ID, QuarantineFlag: &flag,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	flags, err := store.ComplianceFlags()
	if err != nil {
		t.Fatalf("flags failed: %v", err)
	}

	found := false
	for _, f := range flags {
		if f.SpecimenID == sp.ID && f.FlagType == "quarantine_no_release" {
			found = true
		}
	}
	if !found {
		t.Error("expected quarantine_no_release flag for quarantined specimen without release date")
	}
}

func TestSnoozeEscalation(t *testing.T) {
	store := openTestStore(t, "test-reminders.db")
	if err := store.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	r, err := store.CreateReminder(&model.CreateReminderRequest{
		Title: "Check callus", DueDate: "2025-08-20",
	}, nil)
	if err != nil {
		t.Fatalf("create reminder failed: %v", err)
	}
	if r.Urgency == nil || *r.Urgency != "normal" {
		t.Errorf("expected default urgency normal, got %v", r.Urgency)
	}

	for i := 0; i < 2; i++ {
		if err := store.SnoozeReminder(r.ID); err != nil {
			t.Fatalf("snooze %d failed: %v", i+1, err)
		}
	}

	got, err := store.GetReminder(r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.SnoozeCount != 2 {
		t.Errorf("expected snooze_count 2, got %d", got.SnoozeCount)
	}
	if got.Urgency == nil || *got.Urgency != "critical" {
		t.Errorf("expected escalation to critical, got %v", got.Urgency)
	}
	if got.DueDate != "2025-08-22" {
		t.Errorf("expected due date pushed to 2025-08-22, got %s", got.DueDate)
	}
}
