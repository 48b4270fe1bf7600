package models

import "fmt"

// Role is the access level carried by a session
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates a role name
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// UserRecord is the value stored per username in the user directory
type UserRecord struct {
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Directory maps usernames to their records, persisted under the "users" key
type Directory map[string]UserRecord

// Session is the authenticated identity held for the duration of a login
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the session may see the admin panel
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
