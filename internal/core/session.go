package core

// Role marks a session's routing privilege.
type Role int

const (
	// RoleVisitor is an anonymous chat participant.
	RoleVisitor Role = iota
	// RoleAdmin holds elevated routing privilege under an allocated codename.
	RoleAdmin
)

// Session is one active connection as tracked by the registry. It lives
// from join until disconnect and is never persisted.
type Session struct {
	ID   string
	Name string
	Role Role
}

// IsAdmin reports whether the session currently holds admin privilege.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
