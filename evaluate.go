package gate

// Decision is the evaluator's output for one navigation. It is derived,
// never stored: every navigation recomputes it from the live store.
type Decision struct {
	Allowed bool
	Target  string
}

// Allow returns an admitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// RedirectTo returns a redirecting decision.
func RedirectTo(target string) Decision {
	return Decision{Target: target}
}

// Redirect reports whether the decision carries a redirect target.
func (d Decision) Redirect() bool {
	return !d.Allowed
}

// Evaluate resolves a route descriptor and the decoded claims (nil for
// anonymous or undecodable credentials) into a Decision.
//
// It is a pure, total function: synchronous, no I/O, an answer for every
// input pair. The unverified-owner rule is applied here for every RoleGated
// descriptor so route wrappers cannot drift apart.
func Evaluate(d Descriptor, claims *Claims) Decision {
	switch d.Mode {
	case ModeOpen:
		return Allow()

	case ModePublicOnly:
		if claims == nil {
			return Allow()
		}
		return RedirectTo(claims.Role.DashboardPath())

	case ModeRoleGated:
		if claims == nil {
			return RedirectTo(d.loginTarget())
		}
		if claims.Role == RoleOwner && !claims.Verified {
			return RedirectTo(PathNotVerified)
		}
		if d.Allows(claims.Role) {
			return Allow()
		}
		return RedirectTo(LoginPath(claims.Role))

	case ModePendingVerification:
		if claims == nil {
			return RedirectTo(LoginPath(RoleOwner))
		}
		if claims.Role != RoleOwner {
			return RedirectTo(LoginPath(claims.Role))
		}
		if claims.Verified {
			return RedirectTo(PathOwnerDashboard)
		}
		return Allow()
	}

	// Unknown mode fails closed.
	return RedirectTo(LoginPath(RoleUser))
}
