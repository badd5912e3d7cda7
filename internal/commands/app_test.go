package commands

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/store"
	"github.com/jnowat/SteloPTC/internal/util"
)

func newTestApp(t *testing.T, name string) *App {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Seed(); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return NewApp(s)
}

func loginAdmin(t *testing.T, app *App) string {
	t.Helper()
	resp, err := app.Login(&model.LoginRequest{Username: "admin", Password: "admin"})
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	return resp.Token
}

// createUserAndLogin provisions a user with the given role and returns
// a session token for them.
func createUserAndLogin(t *testing.T, app *App, adminToken, username, role string) string {
	t.Helper()
	_, err := app.CreateUser(adminToken, &model.CreateUserRequest{
		Username:    username,
		Password:    "secret",
		DisplayName: username,
		Role:        role,
	})
	if err != nil {
		t.Fatalf("failed to create %s user: %v", role, err)
	}
	resp, err := app.Login(&model.LoginRequest{Username: username, Password: "secret"})
	if err != nil {
		t.Fatalf("%s login failed: %v", role, err)
	}
	return resp.Token
}

func firstSpecies(t *testing.T, app *App, token string) model.Species {
	t.Helper()
	species, err := app.ListSpecies(token)
	if err != nil {
		t.Fatalf("failed to list species: %v", err)
	}
	if len(species) == 0 {
		t.Fatal("expected seeded species")
	}
	return species[0]
}

func TestLoginDispatchRoundTrip(t *testing.T) {
	app := newTestApp(t, "cmd-login.db")

	result, err := app.Dispatch("login", "", json.RawMessage(`{"username":"admin","password":"admin"}`))
	if err != nil {
		t.Fatalf("login dispatch failed: %v", err)
	}
	resp, ok := result.(*model.LoginResponse)
	if !ok {
		t.Fatalf("expected *LoginResponse, got %T", result)
	}
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	if resp.User.Username != "admin" {
		t.Errorf("expected admin, got %q", resp.User.Username)
	}

	current, err := app.Dispatch("get_current_user", resp.Token, nil)
	if err != nil {
		t.Fatalf("get_current_user failed: %v", err)
	}
	if current.(*model.UserPublic).Username != "admin" {
		t.Error("expected current user to be admin")
	}

	if _, err := app.Dispatch("logout", resp.Token, nil); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := app.Dispatch("get_current_user", resp.Token, nil); !errors.Is(err, util.ErrSessionInvalid) {
		t.Errorf("expected ErrSessionInvalid after logout, got %v", err)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	app := newTestApp(t, "cmd-unknown.db")
	if _, err := app.Dispatch("drop_all_tables", "", nil); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestDispatchRejectsMalformedPayload(t *testing.T) {
	app := newTestApp(t, "cmd-payload.db")
	token := loginAdmin(t, app)

	_, err := app.Dispatch("create_specimen", token, json.RawMessage(`{"species_id": 42}`))
	if !errors.Is(err, util.ErrConstraint) {
		t.Errorf("expected ErrConstraint for malformed payload, got %v", err)
	}
}

func TestGuestIsReadOnly(t *testing.T) {
	app := newTestApp(t, "cmd-guest.db")
	adminToken := loginAdmin(t, app)
	guestToken := createUserAndLogin(t, app, adminToken, "visitor", "guest")

	sp := firstSpecies(t, app, guestToken)
	if _, err := app.CreateSpecimen(guestToken, &model.CreateSpecimenRequest{
		SpeciesID:      sp.ID,
		Stage:          "explant",
		InitiationDate: "2025-06-01",
	}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied on create, got %v", err)
	}

	if _, err := app.GetAuditLog(guestToken, &model.AuditSearchParams{}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied on audit log, got %v", err)
	}

	// Reads stay open
	if _, err := app.SearchSpecimens(guestToken, &model.SpecimenSearchParams{}); err != nil {
		t.Errorf("guest search failed: %v", err)
	}
}

func TestTechCannotManage(t *testing.T) {
	app := newTestApp(t, "cmd-tech.db")
	adminToken := loginAdmin(t, app)
	techToken := createUserAndLogin(t, app, adminToken, "bench", "tech")

	sp := firstSpecies(t, app, techToken)
	specimen, err := app.CreateSpecimen(techToken, &model.CreateSpecimenRequest{
		SpeciesID:      sp.ID,
		Stage:          "explant",
		InitiationDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("tech create failed: %v", err)
	}

	// Archiving requires a managing role
	if err := app.DeleteSpecimen(techToken, specimen.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied on delete, got %v", err)
	}
	if err := app.DeleteSpecimen(adminToken, specimen.ID); err != nil {
		t.Errorf("admin delete failed: %v", err)
	}
}

func TestUpdateUserRoleGuards(t *testing.T) {
	app := newTestApp(t, "cmd-roles.db")
	adminToken := loginAdmin(t, app)
	admin, err := app.GetCurrentUser(adminToken)
	if err != nil {
		t.Fatalf("failed to get current user: %v", err)
	}

	// Admins cannot change their own role
	_, err = app.UpdateUserRole(adminToken, &UpdateUserRoleRequest{UserID: admin.ID, Role: "guest"})
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied on self role change, got %v", err)
	}

	techToken := createUserAndLogin(t, app, adminToken, "junior", "tech")
	users, err := app.ListUsers(adminToken)
	if err != nil {
		t.Fatalf("failed to list users: %v", err)
	}
	var juniorID string
	for _, u := range users {
		if u.Username == "junior" {
			juniorID = u.ID
		}
	}

	updated, err := app.UpdateUserRole(adminToken, &UpdateUserRoleRequest{UserID: juniorID, Role: "supervisor"})
	if err != nil {
		t.Fatalf("role update failed: %v", err)
	}
	if updated.Role != "supervisor" {
		t.Errorf("expected supervisor, got %s", updated.Role)
	}

	// Non-admins cannot touch roles even after promotion of others
	if _, err := app.UpdateUserRole(techToken, &UpdateUserRoleRequest{UserID: admin.ID, Role: "guest"}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied for tech, got %v", err)
	}
}

func TestAuditFailureDoesNotFailMutation(t *testing.T) {
	app := newTestApp(t, "cmd-audit.db")
	token := loginAdmin(t, app)

	if _, err := app.Store().DB().Exec("DROP TABLE audit_log"); err != nil {
		t.Fatalf("failed to drop audit_log: %v", err)
	}

	created, err := app.CreateSpecies(token, &model.CreateSpeciesRequest{
		Genus:       "Vanilla",
		SpeciesName: "planifolia",
		SpeciesCode: "VAN-PLA",
	})
	if err != nil {
		t.Fatalf("create species failed with audit table gone: %v", err)
	}
	if created.SpeciesCode != "VAN-PLA" {
		t.Errorf("unexpected species code %q", created.SpeciesCode)
	}
}

func TestResetDatabaseRequiresExactPhrase(t *testing.T) {
	app := newTestApp(t, "cmd-reset.db")
	token := loginAdmin(t, app)

	sp := firstSpecies(t, app, token)
	if _, err := app.CreateSpecimen(token, &model.CreateSpecimenRequest{
		SpeciesID:      sp.ID,
		Stage:          "explant",
		InitiationDate: "2025-06-01",
	}); err != nil {
		t.Fatalf("create specimen failed: %v", err)
	}

	for _, phrase := range []string{"", "reset database", "RESET  DATABASE", "DELETE EVERYTHING"} {
		if _, err := app.ResetDatabase(token, phrase); !errors.Is(err, util.ErrPermissionDenied) {
			t.Errorf("phrase %q: expected ErrPermissionDenied, got %v", phrase, err)
		}
	}

	if _, err := app.ResetDatabase(token, "RESET DATABASE"); err != nil {
		t.Fatalf("reset with correct phrase failed: %v", err)
	}

	page, err := app.SearchSpecimens(token, &model.SpecimenSearchParams{})
	if err != nil {
		t.Fatalf("search after reset failed: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("expected no specimens after reset, got %d", page.Total)
	}

	// Reference data and the session survive
	if len(firstSpecies(t, app, token).ID) == 0 {
		t.Error("expected species to survive reset")
	}
}

func TestLogErrorWithoutSession(t *testing.T) {
	app := newTestApp(t, "cmd-errors.db")

	// An invalid token only drops attribution
	entry, err := app.LogError("bogus-token", &model.CreateErrorLogRequest{
		Title:   "startup failure",
		Message: "could not open window",
		Module:  ptr("ui"),
	})
	if err != nil {
		t.Fatalf("log_error failed without session: %v", err)
	}
	if entry.UserID != nil {
		t.Error("expected unattributed error entry")
	}

	token := loginAdmin(t, app)
	count, err := app.UnreadErrorCount(token)
	if err != nil {
		t.Fatalf("unread count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 unread error, got %d", count)
	}
}

func TestBackupCreateAndList(t *testing.T) {
	app := newTestApp(t, "cmd-backup.db")
	token := loginAdmin(t, app)

	path, err := app.CreateBackup(token, nil)
	if err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty backup file")
	}
	if !strings.HasPrefix(filepath.Base(path), "stelo_ptc_backup_") {
		t.Errorf("unexpected backup name %q", filepath.Base(path))
	}

	backups, err := app.ListBackups(token)
	if err != nil {
		t.Fatalf("list backups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Path != path {
		t.Errorf("expected path %q, got %q", path, backups[0].Path)
	}

	// Guests may list but not create
	guestToken := createUserAndLogin(t, app, token, "visitor", "guest")
	if _, err := app.CreateBackup(guestToken, nil); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied for guest backup, got %v", err)
	}
	if _, err := app.ListBackups(guestToken); err != nil {
		t.Errorf("guest list backups failed: %v", err)
	}
}

func TestExportSpecimens(t *testing.T) {
	app := newTestApp(t, "cmd-export.db")
	token := loginAdmin(t, app)

	sp := firstSpecies(t, app, token)
	specimen, err := app.CreateSpecimen(token, &model.CreateSpecimenRequest{
		SpeciesID:      sp.ID,
		Stage:          "shoot",
		InitiationDate: "2025-05-10",
		Notes:          ptr("vigorous, some callus"),
	})
	if err != nil {
		t.Fatalf("create specimen failed: %v", err)
	}

	csvOut, err := app.ExportSpecimensCSV(token)
	if err != nil {
		t.Fatalf("csv export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(csvOut), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Accession,Species Code,Species,Stage") {
		t.Errorf("unexpected csv header %q", lines[0])
	}
	if !strings.Contains(lines[1], specimen.AccessionNumber) {
		t.Errorf("expected row for %s, got %q", specimen.AccessionNumber, lines[1])
	}
	// The comma in the notes forces quoting
	if !strings.Contains(lines[1], `"vigorous, some callus"`) {
		t.Errorf("expected quoted notes in %q", lines[1])
	}

	jsonOut, err := app.ExportSpecimensJSON(token)
	if err != nil {
		t.Fatalf("json export failed: %v", err)
	}
	var rows []ExportSpecimen
	if err := json.Unmarshal([]byte(jsonOut), &rows); err != nil {
		t.Fatalf("export json does not parse: %v", err)
	}
	if len(rows) != 1 || rows[0].AccessionNumber != specimen.AccessionNumber {
		t.Errorf("unexpected export rows: %+v", rows)
	}

	// Archived specimens fall out of exports
	if err := app.DeleteSpecimen(token, specimen.ID); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	csvOut, err = app.ExportSpecimensCSV(token)
	if err != nil {
		t.Fatalf("csv export after archive failed: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(csvOut), "\n"); len(lines) != 1 {
		t.Errorf("expected header only after archive, got %d lines", len(lines))
	}
}

func itemAuditEntries(t *testing.T, app *App, token, itemID string) []model.AuditEntry {
	t.Helper()
	page, err := app.GetAuditLog(token, &model.AuditSearchParams{
		EntityType: ptr("inventory"),
		EntityID:   &itemID,
	})
	if err != nil {
		t.Fatalf("audit search failed: %v", err)
	}
	return page.Items
}

func TestStockMutationsAreAudited(t *testing.T) {
	app := newTestApp(t, "cmd-stock-audit.db")
	token := loginAdmin(t, app)

	hundred := 100.0
	item, err := app.CreateInventoryItem(token, &model.CreateInventoryItemRequest{
		Name: "NAA", Category: "hormone", Unit: "mg", CurrentStock: &hundred,
	})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	amount := 25.0
	if _, err := app.CreateMediaBatch(token, &model.CreateMediaBatchRequest{
		Name:            "MS + NAA",
		PreparationDate: "2025-08-01",
		Hormones: []model.MediaHormone{{
			HormoneName:         "NAA",
			ConcentrationMgPerL: 0.5,
			ReagentBatchID:      &item.ID,
			AmountUsed:          &amount,
		}},
	}); err != nil {
		t.Fatalf("create batch failed: %v", err)
	}

	entries := itemAuditEntries(t, app, token, item.ID)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry after media deduction, got %d", len(entries))
	}
	if entries[0].Action != "deduct_stock" {
		t.Errorf("expected action deduct_stock, got %q", entries[0].Action)
	}
	if entries[0].OldValue == nil || *entries[0].OldValue != "100.00" {
		t.Errorf("expected old value 100.00, got %v", entries[0].OldValue)
	}
	if entries[0].NewValue == nil || *entries[0].NewValue != "75.00" {
		t.Errorf("expected new value 75.00, got %v", entries[0].NewValue)
	}

	ten := 10.0
	if _, err := app.CreatePreparedSolution(token, &model.CreatePreparedSolutionRequest{
		Name:              "NAA stock 1 mg/ml",
		SourceItemID:      &item.ID,
		Concentration:     1.0,
		ConcentrationUnit: "mg/ml",
		VolumeML:          10,
		PreparationDate:   "2025-08-02",
		AmountUsed:        &ten,
	}); err != nil {
		t.Fatalf("create solution failed: %v", err)
	}

	entries = itemAuditEntries(t, app, token, item.ID)
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries after solution deduction, got %d", len(entries))
	}
	if !hasAuditChange(entries, "deduct_stock", "75.00", "65.00") {
		t.Errorf("missing deduct_stock 75.00 -> 65.00 entry in %+v", entries)
	}

	if _, err := app.AdjustStock(token, &model.AdjustStockRequest{
		ID: item.ID, Adjustment: -5, Reason: ptr("spillage"),
	}); err != nil {
		t.Fatalf("adjust stock failed: %v", err)
	}

	entries = itemAuditEntries(t, app, token, item.ID)
	if len(entries) != 3 {
		t.Fatalf("expected 3 audit entries after adjustment, got %d", len(entries))
	}
	if !hasAuditChange(entries, "adjust_stock", "65.00", "60.00") {
		t.Errorf("missing adjust_stock 65.00 -> 60.00 entry in %+v", entries)
	}
}

func hasAuditChange(entries []model.AuditEntry, action, oldValue, newValue string) bool {
	for _, e := range entries {
		if e.Action == action &&
			e.OldValue != nil && *e.OldValue == oldValue &&
			e.NewValue != nil && *e.NewValue == newValue {
			return true
		}
	}
	return false
}
