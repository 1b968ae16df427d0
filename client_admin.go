package gate

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Admin moderation endpoints.

// UsersByRole lists accounts of one role.
func (c *Client) UsersByRole(ctx context.Context, role Role) ([]AccountUser, error) {
	out := []AccountUser{}
	path := fmt.Sprintf("/admin/users/%s", role)
	if err := c.call(ctx, http.MethodGet, path, nil, &out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleUserBlock flips an account's blocked state. A blocked account's
// credential starts failing protected calls on its next request.
func (c *Client) ToggleUserBlock(ctx context.Context, userID uuid.UUID) (*AccountUser, error) {
	payload := map[string]string{"userId": userID.String()}
	out := &AccountUser{}
	if err := c.call(ctx, http.MethodPut, "/admin/user", payload, out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// VerificationRequests lists pending owner verification submissions.
func (c *Client) VerificationRequests(ctx context.Context) ([]VerificationRequest, error) {
	out := []VerificationRequest{}
	if err := c.call(ctx, http.MethodGet, "/admin/notification", nil, &out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveVerificationRequest approves or rejects an owner submission.
// Approval flips the owner's server-side verified flag; their stored
// credential stays stale until they log in again, which is exactly what the
// pending-verification reconciliation detects.
func (c *Client) ResolveVerificationRequest(ctx context.Context, id uuid.UUID, decision ModerationDecision) (*VerificationRequest, error) {
	if err := decision.Validate(); err != nil {
		return nil, localValidationError(err)
	}

	out := &VerificationRequest{}
	path := fmt.Sprintf("/admin/notification/%s", id)
	if err := c.call(ctx, http.MethodPut, path, decision, out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}
