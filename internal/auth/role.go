package auth

// Role is the caller's session role. The zero value means there is no session.
type Role string

const (
	RoleNone  Role = ""
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Authenticated reports whether a session exists.
func (r Role) Authenticated() bool {
	return r != RoleNone
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole maps a stored or claimed role name onto a Role. Unknown names
// collapse to RoleUser so they never grant admin rights.
func ParseRole(name string) Role {
	switch Role(name) {
	case RoleNone:
		return RoleNone
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}
