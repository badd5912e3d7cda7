// Package auth implements credential verification and session tokens.
// Login failures are deliberately indistinguishable: a bad username, a bad
// password, and a deactivated account all produce the same error.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/store"
	"github.com/jnowat/SteloPTC/internal/util"
)

const (
	tokenBytes = 32
	sessionTTL = 24 * time.Hour
	timeLayout = "2006-01-02 15:04:05"
)

// Guard mediates authentication and session validation over the store
type Guard struct {
	store *store.Store
}

// NewGuard returns a Guard backed by the given store
func NewGuard(s *store.Store) *Guard {
	return &Guard{store: s}
}

// Login verifies credentials and opens a new session. Multiple sessions
// per user may coexist.
func (g *Guard) Login(username, password string) (*model.LoginResponse, error) {
	user, err := g.store.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	expires := time.Now().UTC().Add(sessionTTL).Format(timeLayout)
	if err := g.store.CreateSession(user.ID, token, expires); err != nil {
		return nil, err
	}

	// Login is as good a moment as any to drop dead sessions
	if err := g.store.PurgeExpiredSessions(); err != nil {
		util.WarnLog("failed to purge expired sessions: %v", err)
	}

	return &model.LoginResponse{Token: token, User: user.Public()}, nil
}

// Validate resolves a session token to its user. Expired sessions and
// deactivated users fail identically.
func (g *Guard) Validate(token string) (*model.User, error) {
	if token == "" {
		return nil, util.ErrSessionInvalid
	}
	user, err := g.store.GetSessionUser(token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.ErrSessionInvalid
	}
	return user, nil
}

// Logout invalidates a session token. Unknown tokens are ignored so
// logout is idempotent.
func (g *Guard) Logout(token string) error {
	return g.store.DeleteSession(token)
}

// HashPassword produces a bcrypt hash for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// newToken returns 32 bytes of CSPRNG output, URL-safe base64 without
// padding.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
