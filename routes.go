package gate

import "strings"

// routeRule binds one path pattern to a descriptor. Pattern segments
// starting with ':' match any single segment.
type routeRule struct {
	segments   []string
	descriptor Descriptor
}

// RouteTable maps client route patterns to their policy descriptors. Rules
// are matched in registration order, first match wins.
type RouteTable struct {
	rules []routeRule
}

func NewRouteTable() *RouteTable {
	return &RouteTable{}
}

// Add registers a pattern. Returns the table for chaining.
func (t *RouteTable) Add(pattern string, d Descriptor) *RouteTable {
	t.rules = append(t.rules, routeRule{
		segments:   splitPath(pattern),
		descriptor: d,
	})
	return t
}

// Resolve returns the descriptor for path. Unregistered paths resolve to an
// Open descriptor with ok=false so callers can distinguish a true match.
func (t *RouteTable) Resolve(path string) (Descriptor, bool) {
	segments := splitPath(path)

	for _, rule := range t.rules {
		if matchSegments(rule.segments, segments) {
			return rule.descriptor, true
		}
	}

	return Open(), false
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return true
}

// DefaultRouteTable returns the platform's client route surface.
func DefaultRouteTable() *RouteTable {
	return NewRouteTable().
		Add("/register/:role", PublicOnly()).
		Add("/otp/:role/:email", PublicOnly()).
		Add("/login/:role", PublicOnly()).
		Add("/forgot-password/:role", PublicOnly()).
		Add("/reset-password", PublicOnly()).
		Add(PathAuthSuccess, PublicOnly()).
		Add(PathHome, Open()).
		Add(PathUserDashboard, RoleGated(RoleUser)).
		Add(PathAdminDashboard, RoleGated(RoleAdmin)).
		Add(PathOwnerDashboard, RoleGated(RoleOwner)).
		Add(PathNotVerified, PendingVerification())
}
