package permissions

// Role is a user's role within a single project.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// AllRoles lists every known role, highest rank first.
var AllRoles = []Role{RoleOwner, RoleAdmin, RoleMember}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Rank orders roles for display (owner > admin > member). Authorization
// decisions never compare ranks; they go through the permission table.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

func (r Role) String() string {
	return string(r)
}
