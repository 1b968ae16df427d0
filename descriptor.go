package gate

// PolicyMode selects the rule set a route group is evaluated under.
type PolicyMode string

const (
	// ModeOpen admits everyone.
	ModeOpen PolicyMode = "open"
	// ModePublicOnly admits only anonymous visitors; authenticated ones are
	// bounced to their dashboard.
	ModePublicOnly PolicyMode = "public-only"
	// ModeRoleGated admits the descriptor's allowed roles, subject to the
	// verified-owner rule.
	ModeRoleGated PolicyMode = "role-gated"
	// ModePendingVerification admits precisely owners that are not yet
	// verified and denies everyone else.
	ModePendingVerification PolicyMode = "pending-verification"
)

// Descriptor is the static, per-route-group authorization requirement.
// Descriptors are authored once at route-table construction; evaluation
// never mutates them.
type Descriptor struct {
	Mode    PolicyMode
	Allowed []Role
}

// Open returns a descriptor admitting everyone.
func Open() Descriptor {
	return Descriptor{Mode: ModeOpen}
}

// PublicOnly returns a descriptor for anonymous-only routes such as login
// and registration pages.
func PublicOnly() Descriptor {
	return Descriptor{Mode: ModePublicOnly}
}

// RoleGated returns a descriptor admitting the given roles.
func RoleGated(roles ...Role) Descriptor {
	return Descriptor{Mode: ModeRoleGated, Allowed: roles}
}

// PendingVerification returns the descriptor for the not-verified route
// group: unverified owners only.
func PendingVerification() Descriptor {
	return Descriptor{Mode: ModePendingVerification, Allowed: []Role{RoleOwner}}
}

// Allows reports whether the role is in the descriptor's allowed set.
func (d Descriptor) Allows(role Role) bool {
	for _, allowed := range d.Allowed {
		if allowed == role {
			return true
		}
	}
	return false
}

// loginTarget picks the login route an anonymous visitor is sent to. When
// the allowed set is a singleton the login is role-parameterized, otherwise
// it defaults to the user login.
func (d Descriptor) loginTarget() string {
	if len(d.Allowed) == 1 {
		return LoginPath(d.Allowed[0])
	}
	return LoginPath(RoleUser)
}
