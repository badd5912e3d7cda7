package commands

import (
	"fmt"

	"github.com/jnowat/SteloPTC/internal/auth"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/util"
)

// Login verifies credentials and opens a session
func (a *App) Login(req *model.LoginRequest) (*model.LoginResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	resp, err := a.guard.Login(req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&resp.User.ID, "login", "session", nil, nil, nil, nil)
	return resp, nil
}

// Logout closes a session. Always succeeds for unknown tokens.
func (a *App) Logout(token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if user, err := a.guard.Validate(token); err == nil {
		a.audit.Record(&user.ID, "logout", "session", nil, nil, nil, nil)
	}
	return a.guard.Logout(token)
}

// GetCurrentUser returns the caller's own public projection
func (a *App) GetCurrentUser(token string) (*model.UserPublic, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.requireSession(token)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// ListUsers returns all users. Managing roles only.
func (a *App) ListUsers(token string) ([]model.UserPublic, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireManage(token); err != nil {
		return nil, err
	}

	users, err := a.store.ListUsers()
	if err != nil {
		return nil, err
	}

	public := make([]model.UserPublic, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return public, nil
}

// CreateUser adds a user account. Admin only.
func (a *App) CreateUser(token string, req *model.CreateUserRequest) (*model.UserPublic, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	actor, err := a.requireAdmin(token)
	if err != nil {
		return nil, err
	}

	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", util.ErrConstraint)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := a.store.CreateUser(req, hash)
	if err != nil {
		return nil, err
	}

	a.audit.Record(&actor.ID, "create", "user", &user.ID, nil, ptr(user.Username), nil)
	pub := user.Public()
	return &pub, nil
}

// UpdateUserRoleRequest names a user and their new role
type UpdateUserRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// UpdateUserRole changes a user's role. Admin only; admins cannot demote
// themselves, which keeps at least one admin reachable.
func (a *App) UpdateUserRole(token string, req *UpdateUserRoleRequest) (*model.UserPublic, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	actor, err := a.requireAdmin(token)
	if err != nil {
		return nil, err
	}

	if req.UserID == actor.ID {
		return nil, fmt.Errorf("%w: cannot change own role", util.ErrPermissionDenied)
	}

	role := model.ParseRole(req.Role)
	before, err := a.store.GetUser(req.UserID)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, util.ErrNotFound
	}

	if err := a.store.UpdateUserRole(req.UserID, role); err != nil {
		return nil, err
	}

	a.audit.Record(&actor.ID, "update", "user", &req.UserID,
		ptr(string(before.Role)), ptr(string(role)), ptr("role change"))

	after, err := a.store.GetUser(req.UserID)
	if err != nil {
		return nil, err
	}
	pub := after.Public()
	return &pub, nil
}
