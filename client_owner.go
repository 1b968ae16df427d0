package gate

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Owner-scoped management endpoints. All protected; the platform rejects
// callers whose credential is missing, invalid, or blocked.

// Hotels lists the owner's properties.
func (c *Client) Hotels(ctx context.Context) ([]Hotel, error) {
	out := []Hotel{}
	if err := c.call(ctx, http.MethodGet, "/owner/hotels", nil, &out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// Hotel fetches one property.
func (c *Client) Hotel(ctx context.Context, id uuid.UUID) (*Hotel, error) {
	out := &Hotel{}
	path := fmt.Sprintf("/owner/hotels/%s", id)
	if err := c.call(ctx, http.MethodGet, path, nil, out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateHotel registers a new property.
func (c *Client) CreateHotel(ctx context.Context, payload HotelPayload) (*Hotel, error) {
	if err := payload.Validate(); err != nil {
		return nil, localValidationError(err)
	}

	out := &Hotel{}
	if err := c.call(ctx, http.MethodPost, "/owner/hotels", payload, out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateHotel edits an existing property.
func (c *Client) UpdateHotel(ctx context.Context, id uuid.UUID, payload HotelPayload) (*Hotel, error) {
	if err := payload.Validate(); err != nil {
		return nil, localValidationError(err)
	}

	out := &Hotel{}
	path := fmt.Sprintf("/owner/hotels/%s", id)
	if err := c.call(ctx, http.MethodPut, path, payload, out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleHotelBlock flips the listing's blocked state.
func (c *Client) ToggleHotelBlock(ctx context.Context, id uuid.UUID) (*Hotel, error) {
	out := &Hotel{}
	path := fmt.Sprintf("/owner/hotels/%s/block", id)
	if err := c.call(ctx, http.MethodPatch, path, nil, out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRoom adds a room under one of the owner's hotels.
func (c *Client) CreateRoom(ctx context.Context, payload RoomPayload) (*Room, error) {
	if err := payload.Validate(); err != nil {
		return nil, localValidationError(err)
	}

	out := &Room{}
	if err := c.call(ctx, http.MethodPost, "/owner/rooms", payload, out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// Rooms lists the rooms of one hotel.
func (c *Client) Rooms(ctx context.Context, hotelID uuid.UUID) ([]Room, error) {
	out := []Room{}
	path := fmt.Sprintf("/owner/rooms/%s", hotelID)
	if err := c.call(ctx, http.MethodGet, path, nil, &out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitVerificationRequest uploads the owner's verification document for
// admin moderation. Approval does not touch the stored credential: the owner
// re-authenticates to pick up the verified flag.
func (c *Client) SubmitVerificationRequest(ctx context.Context, payload VerificationSubmission) (*VerificationRequest, error) {
	if err := payload.Validate(); err != nil {
		return nil, localValidationError(err)
	}

	out := &VerificationRequest{}
	if err := c.call(ctx, http.MethodPost, "/owner/owner-notifications", payload, out, callProtected); err != nil {
		return nil, err
	}
	return out, nil
}
