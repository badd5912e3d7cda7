package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role   Role
		write  bool
		manage bool
		admin  bool
	}{
		{RoleAdmin, true, true, true},
		{RoleSupervisor, true, true, false},
		{RoleTech, true, false, false},
		{RoleGuest, false, false, false},
	}

	for _, c := range cases {
		if c.role.CanWrite() != c.write {
			t.Errorf("%s: CanWrite = %v, want %v", c.role, c.role.CanWrite(), c.write)
		}
		if c.role.CanManage() != c.manage {
			t.Errorf("%s: CanManage = %v, want %v", c.role, c.role.CanManage(), c.manage)
		}
		if c.role.IsAdmin() != c.admin {
			t.Errorf("%s: IsAdmin = %v, want %v", c.role, c.role.IsAdmin(), c.admin)
		}
	}
}

func TestParseRoleUnknownIsGuest(t *testing.T) {
	for _, s := range []string{"", "root", "ADMIN", "superuser"} {
		if got := ParseRole(s); got != RoleGuest {
			t.Errorf("ParseRole(%q) = %s, want guest", s, got)
		}
	}
	if got := ParseRole("supervisor"); got != RoleSupervisor {
		t.Errorf("ParseRole(supervisor) = %s", got)
	}
}

func TestPasswordHashNeverSerializes(t *testing.T) {
	u := User{
		ID:           "u1",
		Username:     "admin",
		PasswordHash: "$2a$10$secret",
		DisplayName:  "Administrator",
		Role:         RoleAdmin,
		IsActive:     true,
	}

	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "secret") {
		t.Error("password hash leaked into JSON")
	}

	raw, err = json.Marshal(u.Public())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "secret") {
		t.Error("password hash leaked into public projection")
	}
}
