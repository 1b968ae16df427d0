package gate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gate "github.com/stayloop/go-gate"
)

// testConfig implements gate.Config for a test server.
type testConfig struct {
	baseURL      string
	rejectStatus int
}

func (c testConfig) GetBaseURL() string { return c.baseURL }

func (c testConfig) GetCredentialKey() string { return gate.StorageKey }

func (c testConfig) GetNotAuthorizedStatus() int { return c.rejectStatus }

func (c testConfig) GetRequestTimeout() int { return 5 }

func (c testConfig) GetStoragePath() string { return "" }

func newTestClient(t *testing.T, handler http.Handler) (*gate.Client, *gate.MemoryStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := gate.NewMemoryStore()
	client := gate.NewClient(
		testConfig{baseURL: server.URL, rejectStatus: http.StatusNotAcceptable},
		store,
		gate.WithClientLogger(quietLogger{}),
	)
	return client, store
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestProtectedCallAttachesBearerCredential(t *testing.T) {
	var gotAuth string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, gate.Profile{FirstName: "Asha"})
	}))

	// Attachment is unconditional, even for locally undecodable credentials.
	store.Set("opaque-credential")

	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Asha", profile.FirstName)
	assert.Equal(t, "Bearer opaque-credential", gotAuth)
}

func TestProtectedCallOmitsHeaderWhenAnonymous(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, gate.Profile{})
	}))

	_, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", gotAuth)
}

func TestProtectedRejectionClearsTheStore(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotAcceptable, map[string]string{"message": "credential no longer valid"})
	}))

	store.Set("revoked-credential")

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, gate.IsAuthorizationRejection(err))
	assert.Equal(t, "", store.Get())
}

func TestPublicCallNeverInvalidates(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotAcceptable, map[string]string{"message": "no"})
	}))

	store.Set("existing-credential")

	_, err := client.Login(context.Background(), gate.LoginPayload{
		Email:    "asha@example.com",
		Password: "pw",
		Role:     gate.RoleUser,
	})
	require.Error(t, err)
	assert.False(t, gate.IsAuthorizationRejection(err))
	assert.Equal(t, "existing-credential", store.Get())
}

func TestOtherErrorStatusesDoNotInvalidate(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, status, map[string]string{"message": "nope"})
		}))

		store.Set("credential")

		_, err := client.Profile(context.Background())
		require.Error(t, err, "status %d", status)
		assert.False(t, gate.IsAuthorizationRejection(err))
		assert.Equal(t, "credential", store.Get(), "status %d must not clear", status)
	}
}

func TestStructuredErrorsBecomeFieldErrors(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []map[string]string{
				{"field": "email", "message": "email is already registered"},
			},
		})
	}))

	err := client.Register(context.Background(), validRegister())
	require.Error(t, err)

	fields, ok := gate.FieldErrorsFrom(err)
	require.True(t, ok)
	assert.Equal(t, "email is already registered", fields["email"])
}

func TestUnstructuredErrorCarriesTheServerMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
	}))

	_, err := client.Login(context.Background(), gate.LoginPayload{
		Email:    "asha@example.com",
		Password: "wrong",
		Role:     gate.RoleUser,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	_, ok := gate.FieldErrorsFrom(err)
	assert.False(t, ok)
}

func TestLocalValidationShortCircuitsTheRequest(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.Login(context.Background(), gate.LoginPayload{Email: "not-an-email"})
	require.Error(t, err)

	fields, ok := gate.FieldErrorsFrom(err)
	require.True(t, ok)
	assert.NotEmpty(t, fields["email"])
	assert.False(t, called)
}

func TestLoginStoresTheCredentialFromTheBody(t *testing.T) {
	token := signedCredential(t, &gate.Claims{Role: gate.RoleOwner, Verified: true})

	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}))

	claims, err := client.Login(context.Background(), gate.LoginPayload{
		Email:    "asha@example.com",
		Password: "pw",
		Role:     gate.RoleOwner,
	})
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, gate.RoleOwner, claims.Role)
	assert.Equal(t, token, store.Get())
}

func TestLoginFallsBackToTheCookie(t *testing.T) {
	token := signedCredential(t, &gate.Claims{Role: gate.RoleUser})

	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: gate.StorageKey, Value: token})
		writeJSON(w, http.StatusOK, map[string]string{})
	}))

	claims, err := client.Login(context.Background(), gate.LoginPayload{
		Email:    "asha@example.com",
		Password: "pw",
		Role:     gate.RoleUser,
	})
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, token, store.Get())
}

func TestLoginWithoutCredentialFails(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	}))

	_, err := client.Login(context.Background(), gate.LoginPayload{
		Email:    "asha@example.com",
		Password: "pw",
		Role:     gate.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, "", store.Get())
}

func TestVerifyOTPFailureSurfacesTheMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "invalid otp"})
	}))

	err := client.VerifyOTP(context.Background(), gate.OTPPayload{
		OTP:   "123456",
		Email: "asha@example.com",
		Role:  gate.RoleUser,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid otp")
}

func TestCompleteOAuth(t *testing.T) {
	client, store := newTestClient(t, http.NotFoundHandler())

	assert.Equal(t, gate.PathHome, client.CompleteOAuth("token=oauth-credential"))
	assert.Equal(t, "oauth-credential", store.Get())

	store.Clear()
	assert.Equal(t, "/login/user", client.CompleteOAuth(""))
	assert.Equal(t, "/login/user", client.CompleteOAuth("other=x"))
	assert.Equal(t, "/login/user", client.CompleteOAuth("%zz"))
	assert.Equal(t, "", store.Get())
}

func TestLogoutAlwaysClearsTheStore(t *testing.T) {
	t.Run("server accepts", func(t *testing.T) {
		client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
		}))
		store.Set("credential")

		require.NoError(t, client.Logout(context.Background()))
		assert.Equal(t, "", store.Get())
	})

	t.Run("server rejects the credential", func(t *testing.T) {
		client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotAcceptable, map[string]string{"message": "no"})
		}))
		store.Set("credential")

		require.NoError(t, client.Logout(context.Background()))
		assert.Equal(t, "", store.Get())
	})

	t.Run("server errors", func(t *testing.T) {
		client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
		}))
		store.Set("credential")

		require.Error(t, client.Logout(context.Background()))
		assert.Equal(t, "", store.Get())
	})
}

func TestGoogleAuthURL(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())
	assert.Contains(t, client.GoogleAuthURL(), "/auth/google")
}
