package models

// Role partitions the credential namespace and decides mutation rights.
type Role string

const (
	RoleFaculty Role = "FACULTY"
	RoleStudent Role = "STUDENT"
)

// ParseRole returns the role for a stored string, or "" when unknown.
func ParseRole(s string) Role {
	switch s {
	case string(RoleFaculty):
		return RoleFaculty
	case string(RoleStudent):
		return RoleStudent
	default:
		return ""
	}
}

// Account is a local credential record. The account system is a prototype:
// passwords are stored and compared as plain text.
type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"-"`
}

// Session is the authenticated identity, zero-valued when signed out.
type Session struct {
	Role     Role
	Username string
}

// SignedIn reports whether the session holds an authenticated identity.
func (s Session) SignedIn() bool {
	return s.Role != "" && s.Username != ""
}
