package identity

import "strings"

// Role values match what the upstream gateway injects via X-User-Role.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// Caller is the identity the gateway authenticated for the current request.
// The service never validates credentials itself; it only trusts and
// role-gates on these values.
type Caller struct {
	ID    string
	Email string
	Role  Role
}

func (c Caller) Known() bool {
	return strings.TrimSpace(c.ID) != ""
}

func (c Caller) Is(role Role) bool {
	return c.Role == role
}

// CanManageListings reports whether the caller may create accommodations.
func (c Caller) CanManageListings() bool {
	return c.Role == RoleHost || c.Role == RoleAdmin
}

func ParseRole(value string) Role {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(RoleHost):
		return RoleHost
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleGuest
	}
}
