package models

import "strings"

// Role is the canonical role stored on users and carried in tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// roleAliases maps client-facing role names onto canonical roles.
var roleAliases = map[string]Role{
	"user":           RoleUser,
	"owner":          RoleOwner,
	"facility_owner": RoleOwner,
	"admin":          RoleAdmin,
}

// ParseRole translates a client-supplied role name to its canonical Role.
func ParseRole(s string) (Role, bool) {
	r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleOwner || r == RoleAdmin
}
