package gate_test

import (
	"net/http"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	gate "github.com/stayloop/go-gate"
)

func passthrough(c router.Context) error {
	return c.Next()
}

func TestGuardAdmitsMatchingCredential(t *testing.T) {
	token := signedCredential(t, &gate.Claims{Role: gate.RoleAdmin})

	ctx := &MockContext{}
	ctx.On("Cookies", gate.StorageKey).Return(token)

	filter := gate.NewRouteFilter(gate.WithFilterLogger(quietLogger{}))
	handler := filter.Guard(gate.RoleGated(gate.RoleAdmin))(passthrough)

	require.NoError(t, handler(ctx))
	assert.True(t, ctx.NextCalled)
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	ctx := &MockContext{}
	ctx.On("Cookies", gate.StorageKey).Return("")
	ctx.On("Header", "Authorization").Return("")
	ctx.On("OriginalURL").Return("/admin-dashboard")
	ctx.On("Method").Return("GET")
	ctx.On("Cookie", mock.Anything).Return()
	ctx.On("Redirect", "/login/admin", []int{http.StatusFound}).Return(nil)

	filter := gate.NewRouteFilter(gate.WithFilterLogger(quietLogger{}))
	handler := filter.Guard(gate.RoleGated(gate.RoleAdmin))(passthrough)

	require.NoError(t, handler(ctx))
	assert.False(t, ctx.NextCalled)
	ctx.AssertExpectations(t)
}

func TestGuardReadsTheBearerHeader(t *testing.T) {
	token := signedCredential(t, &gate.Claims{Role: gate.RoleUser})

	ctx := &MockContext{}
	ctx.On("Cookies", gate.StorageKey).Return("")
	ctx.On("Header", "Authorization").Return("Bearer " + token)

	filter := gate.NewRouteFilter(gate.WithFilterLogger(quietLogger{}))
	handler := filter.Guard(gate.RoleGated(gate.RoleUser))(passthrough)

	require.NoError(t, handler(ctx))
	assert.True(t, ctx.NextCalled)
}

func TestGuardIgnoresMalformedAuthorizationHeaders(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic dXNlcg==", "justatoken"} {
		ctx := &MockContext{}
		ctx.On("Cookies", gate.StorageKey).Return("")
		ctx.On("Header", "Authorization").Return(header)
		ctx.On("OriginalURL").Return("/user-dashboard")
		ctx.On("Method").Return("GET")
		ctx.On("Cookie", mock.Anything).Return()
		ctx.On("Redirect", "/login/user", mock.Anything).Return(nil)

		filter := gate.NewRouteFilter(gate.WithFilterLogger(quietLogger{}))
		handler := filter.Guard(gate.RoleGated(gate.RoleUser))(passthrough)

		require.NoError(t, handler(ctx), "header %q", header)
		assert.False(t, ctx.NextCalled, "header %q", header)
	}
}

func TestGuardSendsUnverifiedOwnerToNotVerified(t *testing.T) {
	token := signedCredential(t, &gate.Claims{Role: gate.RoleOwner, Verified: false})

	ctx := &MockContext{}
	ctx.On("Cookies", gate.StorageKey).Return(token)
	ctx.On("OriginalURL").Return("/owner-dashboard")
	ctx.On("Method").Return("GET")
	ctx.On("Cookie", mock.Anything).Return()
	ctx.On("Redirect", gate.PathNotVerified, []int{http.StatusFound}).Return(nil)

	filter := gate.NewRouteFilter(gate.WithFilterLogger(quietLogger{}))
	handler := filter.Guard(gate.RoleGated(gate.RoleOwner))(passthrough)

	require.NoError(t, handler(ctx))
	assert.False(t, ctx.NextCalled)
	ctx.AssertExpectations(t)
}

func TestGuardBouncesAuthenticatedOffPublicOnly(t *testing.T) {
	token := signedCredential(t, &gate.Claims{Role: gate.RoleAdmin})

	ctx := &MockContext{}
	ctx.On("Cookies", gate.StorageKey).Return(token)
	ctx.On("OriginalURL").Return("/login/admin")
	ctx.On("Method").Return("POST")
	ctx.On("Redirect", gate.PathAdminDashboard, []int{http.StatusSeeOther}).Return(nil)

	filter := gate.NewRouteFilter(gate.WithFilterLogger(quietLogger{}))
	handler := filter.Guard(gate.PublicOnly())(passthrough)

	require.NoError(t, handler(ctx))
	assert.False(t, ctx.NextCalled)
	// Public-only rejections are not remembered for post-login return.
	ctx.AssertNotCalled(t, "Cookie", mock.Anything)
}

func TestGuardRemembersTheRejectedRoute(t *testing.T) {
	var remembered *router.Cookie

	ctx := &MockContext{}
	ctx.On("Cookies", gate.StorageKey).Return("")
	ctx.On("Header", "Authorization").Return("")
	ctx.On("OriginalURL").Return("/owner-dashboard")
	ctx.On("Method").Return("GET")
	ctx.On("Cookie", mock.Anything).Run(func(args mock.Arguments) {
		remembered = args.Get(0).(*router.Cookie)
	}).Return()
	ctx.On("Redirect", "/login/owner", mock.Anything).Return(nil)

	filter := gate.NewRouteFilter(gate.WithFilterLogger(quietLogger{}))
	handler := filter.Guard(gate.RoleGated(gate.RoleOwner))(passthrough)

	require.NoError(t, handler(ctx))
	require.NotNil(t, remembered)
	assert.Equal(t, "rejected_route", remembered.Name)
	assert.Equal(t, "/owner-dashboard", remembered.Value)
}

func TestGetRedirectPopsTheRememberedRoute(t *testing.T) {
	filter := gate.NewRouteFilter(gate.WithFilterLogger(quietLogger{}))

	t.Run("nothing remembered", func(t *testing.T) {
		ctx := &MockContext{}
		ctx.On("Cookies", "rejected_route").Return("")

		assert.Equal(t, gate.PathHome, filter.GetRedirect(ctx, gate.PathHome))
	})

	t.Run("remembered route wins and is deleted", func(t *testing.T) {
		ctx := &MockContext{}
		ctx.On("Cookies", "rejected_route").Return("/owner-dashboard")
		ctx.On("Cookie", mock.Anything).Return()

		assert.Equal(t, "/owner-dashboard", filter.GetRedirect(ctx, gate.PathHome))
		ctx.AssertCalled(t, "Cookie", mock.Anything)
	})
}

func TestGuardCustomCookieName(t *testing.T) {
	token := signedCredential(t, &gate.Claims{Role: gate.RoleUser})

	ctx := &MockContext{}
	ctx.On("Cookies", "session_token").Return(token)

	filter := gate.NewRouteFilter(
		gate.WithFilterCookieName("session_token"),
		gate.WithFilterLogger(quietLogger{}),
	)
	handler := filter.Guard(gate.RoleGated(gate.RoleUser))(passthrough)

	require.NoError(t, handler(ctx))
	assert.True(t, ctx.NextCalled)
}
