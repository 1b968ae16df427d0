package gate

import (
	"context"
	"net/http"
	"net/url"
)

// Registration, OTP, login, and password-reset endpoints are public: the
// visitor has no credential yet, or is explicitly replacing one.

type registerResponse struct {
	Message string `json:"message"`
}

type otpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register submits the pre-OTP registration form.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) error {
	if err := payload.Validate(); err != nil {
		return localValidationError(err)
	}
	return c.call(ctx, http.MethodPost, "/auth/users", payload, &registerResponse{}, callPublic)
}

// VerifyOTP confirms the emailed one-time code and activates the account.
func (c *Client) VerifyOTP(ctx context.Context, payload OTPPayload) error {
	if err := payload.Validate(); err != nil {
		return localValidationError(err)
	}

	out := otpResponse{}
	if err := c.call(ctx, http.MethodPost, "/auth/verify-otp", payload, &out, callPublic); err != nil {
		return err
	}
	if !out.Success {
		return requestError(out.Message, http.StatusOK)
	}
	return nil
}

// ResendOTP asks for a fresh code for a registration in progress.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.call(ctx, http.MethodPost, "/auth/resend-otp", payload, nil, callPublic)
}

// Login authenticates against the role-parameterized login endpoint and
// writes the received credential to the store. The credential arrives in the
// response body or, failing that, in the token cookie.
func (c *Client) Login(ctx context.Context, payload LoginPayload) (*Claims, error) {
	if err := payload.Validate(); err != nil {
		return nil, localValidationError(err)
	}

	resp, err := c.send(ctx, http.MethodPost, "/auth/login", payload, callPublic)
	if err != nil {
		return nil, err
	}

	out := loginResponse{}
	if len(resp.body) > 0 {
		// Body decode failures fall through to the cookie.
		_ = unmarshalBody(resp.body, &out)
	}

	token := out.Token
	if token == "" {
		for _, cookie := range resp.cookies {
			if cookie.Name == StorageKey {
				token = cookie.Value
				break
			}
		}
	}

	if token == "" {
		return nil, requestError("login response carried no credential", resp.status)
	}

	c.store.Set(token)

	claims, _ := DecodeCredential(token)
	return claims, nil
}

// GoogleAuthURL returns the OAuth initiation URL the view layer redirects
// the browser to. Completion lands on the auth-success route with the
// credential in the query string.
func (c *Client) GoogleAuthURL() string {
	return c.baseURL + "/auth/google"
}

// CompleteOAuth consumes the auth-success callback query and returns the
// path to navigate to next: home on success, the user login when the
// callback carried no credential.
func (c *Client) CompleteOAuth(rawQuery string) string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return LoginPath(RoleUser)
	}

	token := values.Get(StorageKey)
	if token == "" {
		return LoginPath(RoleUser)
	}

	c.store.Set(token)
	return PathHome
}

// ForgotPassword starts a password reset for the given account.
func (c *Client) ForgotPassword(ctx context.Context, payload ForgotPasswordPayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", localValidationError(err)
	}

	out := messageResponse{}
	if err := c.call(ctx, http.MethodPost, "/auth/forgot-password", payload, &out, callPublic); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ResetPassword finalizes a password reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, payload ResetPasswordPayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", localValidationError(err)
	}

	out := messageResponse{}
	if err := c.call(ctx, http.MethodPost, "/auth/reset-password", payload, &out, callPublic); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Logout invalidates the server-side session and always clears the local
// store, even when the server call fails: a logout must never leave a
// usable credential behind.
func (c *Client) Logout(ctx context.Context) error {
	err := c.call(ctx, http.MethodPost, "/auth/logout", nil, nil, callProtected)
	c.store.Clear()
	if err != nil && !IsAuthorizationRejection(err) {
		return err
	}
	return nil
}
