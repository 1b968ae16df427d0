package gate

import (
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-router"
)

// RouteFilter applies the policy evaluator as a backend request filter: the
// same decision table, fed from the request's cookie or bearer header
// instead of the client-side store. Rendering servers mount one Guard per
// route group.
type RouteFilter struct {
	cookieName       string
	authScheme       string
	rejectedRouteKey string
	logger           Logger
}

type RouteFilterOption func(*RouteFilter)

// WithFilterCookieName overrides the credential cookie name.
func WithFilterCookieName(name string) RouteFilterOption {
	return func(f *RouteFilter) {
		if name != "" {
			f.cookieName = name
		}
	}
}

// WithFilterLogger overrides the default logger.
func WithFilterLogger(logger Logger) RouteFilterOption {
	return func(f *RouteFilter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func NewRouteFilter(opts ...RouteFilterOption) *RouteFilter {
	f := &RouteFilter{
		cookieName:       StorageKey,
		authScheme:       "Bearer",
		rejectedRouteKey: "rejected_route",
		logger:           defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	return f
}

// Guard returns middleware enforcing the descriptor for a route group.
func (f *RouteFilter) Guard(d Descriptor) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			claims, _ := DecodeCredential(f.credentialFrom(c))
			decision := Evaluate(d, claims)

			if decision.Allowed {
				return next(c)
			}

			if d.Mode == ModeRoleGated || d.Mode == ModePendingVerification {
				f.rememberRejectedRoute(c)
			}

			f.logger.Info("route gated, redirecting %s to %s", c.OriginalURL(), decision.Target)

			statusCode := http.StatusSeeOther
			if c.Method() == string(router.GET) {
				statusCode = http.StatusFound
			}
			return c.Redirect(decision.Target, statusCode)
		}
	}
}

// GetRedirect pops the remembered rejected route, falling back to def.
func (f *RouteFilter) GetRedirect(c router.Context, def string) string {
	r := c.Cookies(f.rejectedRouteKey)
	if r == "" {
		return def
	}
	f.cookieDel(c, f.rejectedRouteKey)
	return r
}

// credentialFrom reads the raw credential from the cookie, then from the
// Authorization header. An empty result is the anonymous state.
func (f *RouteFilter) credentialFrom(c router.Context) string {
	if cookie := c.Cookies(f.cookieName); cookie != "" {
		return cookie
	}

	header := c.Header("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], f.authScheme) {
		return ""
	}
	return parts[1]
}

func (f *RouteFilter) rememberRejectedRoute(c router.Context) {
	c.Cookie(&router.Cookie{
		Name:     f.rejectedRouteKey,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (f *RouteFilter) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
