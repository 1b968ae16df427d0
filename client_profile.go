package gate

import (
	"context"
	"net/http"
)

// Profile fetches the authenticated account.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	out := &Profile{}
	if err := c.call(ctx, http.MethodGet, "/profile", nil, out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile updates profile fields or the profile image.
func (c *Client) UpdateProfile(ctx context.Context, payload UpdateProfilePayload) (*Profile, error) {
	if err := payload.Validate(); err != nil {
		return nil, localValidationError(err)
	}

	out := &Profile{}
	if err := c.call(ctx, http.MethodPut, "/profile", payload, out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// ChangePassword rotates the account password. The credential keeps working
// until the server invalidates it; role or verification changes always
// require a fresh login.
func (c *Client) ChangePassword(ctx context.Context, payload ChangePasswordPayload) error {
	if err := payload.Validate(); err != nil {
		return localValidationError(err)
	}
	return c.call(ctx, http.MethodPost, "/change-password", payload, nil, callProtected)
}

// OwnerVerified implements VerificationChecker by consulting the server-side
// profile, the authority on verification state.
func (c *Client) OwnerVerified(ctx context.Context) (bool, error) {
	profile, err := c.Profile(ctx)
	if err != nil {
		return false, err
	}
	return profile.Verified, nil
}
