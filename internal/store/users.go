package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/util"
)

const userColumns = `id, username, password_hash, display_name, email, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	var role string
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.Email,
		&role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = model.ParseRole(role)
	return u, nil
}

// GetUserByUsername retrieves a user by username, or nil when absent
func (s *Store) GetUserByUsername(username string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUser retrieves a user by id, or nil when absent
func (s *Store) GetUser(id string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// ListUsers returns all users ordered by username
func (s *Store) ListUsers() ([]model.User, error) {
	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// CreateUser inserts a new user with the given bcrypt hash and returns it
func (s *Store) CreateUser(req *model.CreateUserRequest, passwordHash string) (*model.User, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO users (id, username, password_hash, display_name, email, role)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, req.Username, passwordHash, req.DisplayName, req.Email, string(model.ParseRole(req.Role)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create user: %v", util.ErrConstraint, err)
	}
	return s.GetUser(id)
}

// UpdateUserRole changes a user's role
func (s *Store) UpdateUserRole(id string, role model.Role) error {
	res, err := s.db.Exec(`
		UPDATE users SET role = ?, updated_at = datetime('now') WHERE id = ?
	`, string(role), id)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.ErrNotFound
	}
	return nil
}

// CreateSession stores a session token for a user
func (s *Store) CreateSession(userID, token, expiresAt string) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (id, user_id, token, expires_at) VALUES (?, ?, ?, ?)
	`, uuid.NewString(), userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionUser resolves a token to its user in one query. The session
// must be unexpired and the user active; anything else is a miss.
func (s *Store) GetSessionUser(token string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRow(`
		SELECT u.id, u.username, u.password_hash, u.display_name, u.email,
		       u.role, u.is_active, u.created_at, u.updated_at
		FROM sessions se
		JOIN users u ON u.id = se.user_id
		WHERE se.token = ? AND se.expires_at > datetime('now') AND u.is_active = 1
	`, token))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	return u, nil
}

// DeleteSession removes a session token. Deleting an unknown token is not
// an error.
func (s *Store) DeleteSession(token string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpiredSessions removes sessions past their expiry
func (s *Store) PurgeExpiredSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE expires_at <= datetime('now')"); err != nil {
		return fmt.Errorf("failed to purge sessions: %w", err)
	}
	return nil
}
