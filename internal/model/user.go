package model

// Role is a closed set of permission tiers. Capability checks are driven by
// a lookup table so they can be tested independent of call sites.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleTech       Role = "tech"
	RoleGuest      Role = "guest"
)

type capability struct {
	write  bool
	manage bool
	admin  bool
}

var roleCapabilities = map[Role]capability{
	RoleAdmin:      {write: true, manage: true, admin: true},
	RoleSupervisor: {write: true, manage: true},
	RoleTech:       {write: true},
	RoleGuest:      {},
}

// ParseRole maps a stored role string to a Role; unknown values collapse to
// guest so a corrupted row can never gain capabilities.
func ParseRole(s string) Role {
	r := Role(s)
	if _, ok := roleCapabilities[r]; !ok {
		return RoleGuest
	}
	return r
}

// CanWrite reports whether the role may create and modify records.
func (r Role) CanWrite() bool { return roleCapabilities[r].write }

// CanManage reports whether the role may delete records, manage species,
// and read the audit trail.
func (r Role) CanManage() bool { return roleCapabilities[r].manage }

// IsAdmin reports whether the role may manage users and reset the database.
func (r Role) IsAdmin() bool { return roleCapabilities[r].admin }

// User is an authenticated principal. The password hash never serializes.
type User struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	DisplayName  string  `json:"display_name"`
	Email        *string `json:"email,omitempty"`
	Role         Role    `json:"role"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// UserPublic is the externally visible projection of a User.
type UserPublic struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Email       *string `json:"email,omitempty"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"is_active"`
}

// Public projects the user for serialization.
func (u *User) Public() UserPublic {
	return UserPublic{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
	}
}

type CreateUserRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	DisplayName string  `json:"display_name"`
	Email       *string `json:"email,omitempty"`
	Role        string  `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  UserPublic `json:"user"`
}
