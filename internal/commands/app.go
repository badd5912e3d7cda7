// Package commands implements the request handlers behind the JSON
// command surface. Every handler follows the same shape: take the lock,
// validate the session, check the caller's capability, touch the store,
// audit, and return the fresh row.
package commands

import (
	"sync"

	"github.com/jnowat/SteloPTC/internal/audit"
	"github.com/jnowat/SteloPTC/internal/auth"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/store"
	"github.com/jnowat/SteloPTC/internal/util"
)

// App holds the shared state behind all command handlers. The mutex
// serializes handlers so each command observes a consistent database.
type App struct {
	mu    sync.Mutex
	store *store.Store
	guard *auth.Guard
	audit *audit.Recorder
}

// NewApp wires an App over an opened store
func NewApp(s *store.Store) *App {
	return &App{
		store: s,
		guard: auth.NewGuard(s),
		audit: audit.NewRecorder(s),
	}
}

// Store exposes the underlying store for the CLI commands that bypass
// the session layer (migrate, seed, backup).
func (a *App) Store() *store.Store {
	return a.store
}

// requireSession validates the token and returns the caller
func (a *App) requireSession(token string) (*model.User, error) {
	return a.guard.Validate(token)
}

// requireWrite validates the token and requires a writing role
func (a *App) requireWrite(token string) (*model.User, error) {
	user, err := a.guard.Validate(token)
	if err != nil {
		return nil, err
	}
	if !user.Role.CanWrite() {
		return nil, util.ErrPermissionDenied
	}
	return user, nil
}

// requireManage validates the token and requires a managing role
func (a *App) requireManage(token string) (*model.User, error) {
	user, err := a.guard.Validate(token)
	if err != nil {
		return nil, err
	}
	if !user.Role.CanManage() {
		return nil, util.ErrPermissionDenied
	}
	return user, nil
}

// requireAdmin validates the token and requires the admin role
func (a *App) requireAdmin(token string) (*model.User, error) {
	user, err := a.guard.Validate(token)
	if err != nil {
		return nil, err
	}
	if !user.Role.IsAdmin() {
		return nil, util.ErrPermissionDenied
	}
	return user, nil
}

func ptr[T any](v T) *T { return &v }
