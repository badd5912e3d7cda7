package auth

import (
	"errors"
	"os"
	"testing"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/store"
	"github.com/jnowat/SteloPTC/internal/util"
)

func openSeeded(t *testing.T, name string) *store.Store {
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

	if err := s.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return s
}

func TestLoginAndValidate(t *testing.T) {
	s := openSeeded(t, "test-auth-login.db")
	guard := NewGuard(s)

	resp, err := guard.Login("admin", "admin")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	if resp.User.Username != "admin" {
		t.Errorf("expected admin user, got %s", resp.User.Username)
	}

	user, err := guard.Validate(resp.Token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("expected admin role, got %s", user.Role)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	s := openSeeded(t, "test-auth-fail.db")
	guard := NewGuard(s)

	_, badUser := guard.Login("nobody", "admin")
	_, badPass := guard.Login("admin", "wrong")

	if !errors.Is(badUser, util.ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", badUser)
	}
	if !errors.Is(badPass, util.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", badPass)
	}
	if badUser.Error() != badPass.Error() {
		t.Error("login failure messages must not distinguish cause")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	s := openSeeded(t, "test-auth-expired.db")
	guard := NewGuard(s)

	admin, err := s.GetUserByUsername("admin")
	if err != nil || admin == nil {
		t.Fatalf("failed to get admin: %v", err)
	}

	// A session exactly at or past its expiry is invalid
	if err := s.CreateSession(admin.ID, "expired-token", "2020-01-01 00:00:00"); err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	if _, err := guard.Validate("expired-token"); !errors.Is(err, util.ErrSessionInvalid) {
		t.Errorf("expected ErrSessionInvalid for expired session, got %v", err)
	}
}

func TestValidateEmptyToken(t *testing.T) {
	s := openSeeded(t, "test-auth-empty.db")
	guard := NewGuard(s)

	if _, err := guard.Validate(""); !errors.Is(err, util.ErrSessionInvalid) {
		t.Errorf("expected ErrSessionInvalid for empty token, got %v", err)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	s := openSeeded(t, "test-auth-logout.db")
	guard := NewGuard(s)

	resp, err := guard.Login("admin", "admin")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := guard.Logout(resp.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := guard.Validate(resp.Token); !errors.Is(err, util.ErrSessionInvalid) {
		t.Errorf("expected invalid session after logout, got %v", err)
	}

	// Second logout of the same token is not an error
	if err := guard.Logout(resp.Token); err != nil {
		t.Errorf("repeat logout failed: %v", err)
	}
}

func TestTokensAreUnique(t *testing.T) {
	s := openSeeded(t, "test-auth-tokens.db")
	guard := NewGuard(s)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		resp, err := guard.Login("admin", "admin")
		if err != nil {
			t.Fatalf("login %d failed: %v", i, err)
		}
		if seen[resp.Token] {
			t.Fatal("duplicate session token generated")
		}
		seen[resp.Token] = true
	}
}
