package gate

// Role is the account role carried inside a platform credential.
// It is a closed set: anything outside it fails to decode.
type Role string

const (
	// RoleUser is a guest booking rooms.
	RoleUser Role = "user"
	// RoleOwner is a hotel owner managing properties. Owners additionally
	// carry a verified flag granting access to management features.
	RoleOwner Role = "owner"
	// RoleAdmin moderates users and owner verification requests.
	RoleAdmin Role = "admin"
)

// Route targets shared by the evaluator and the route table.
const (
	PathHome           = "/"
	PathUserDashboard  = "/user-dashboard"
	PathOwnerDashboard = "/owner-dashboard"
	PathAdminDashboard = "/admin-dashboard"
	PathNotVerified    = "/not-verified"
	PathAuthSuccess    = "/auth-success"
)

// IsValid checks if the role is one of the predefined platform roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a Role. Unknown strings fail;
// there is no unknown-role branch anywhere downstream.
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}

// AllRoles returns the predefined roles.
func AllRoles() []Role {
	return []Role{RoleUser, RoleOwner, RoleAdmin}
}

// DashboardPath returns the post-login home for the role.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return PathAdminDashboard
	case RoleOwner:
		return PathOwnerDashboard
	default:
		return PathHome
	}
}

// LoginPath returns the role-parameterized login route. Invalid roles fall
// back to the user login.
func LoginPath(r Role) string {
	if !r.IsValid() {
		r = RoleUser
	}
	return "/login/" + string(r)
}
