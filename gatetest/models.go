package gatetest

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account row behind the fake platform API.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role          string     `bun:"role,notnull" json:"role,omitempty"`
	FirstName     string     `bun:"first_name" json:"firstName,omitempty"`
	LastName      string     `bun:"last_name" json:"lastName,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone" json:"phone,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Verified      bool       `bun:"is_verified" json:"isVerified"`
	Blocked       bool       `bun:"is_blocked" json:"isBlocked"`
	EmailVerified bool       `bun:"is_email_verified" json:"-"`
	OTP           string     `bun:"otp" json:"-"`
	ResetToken    string     `bun:"reset_token" json:"-"`
	Image         string     `bun:"image" json:"image,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Hotel is an owner property row.
type Hotel struct {
	bun.BaseModel `bun:"table:hotels,alias:htl"`

	ID      uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	OwnerID uuid.UUID `bun:"owner_id,notnull,type:uuid" json:"ownerId,omitempty"`
	Name    string    `bun:"name,notnull" json:"name,omitempty"`
	City    string    `bun:"city" json:"city,omitempty"`
	Address string    `bun:"address" json:"address,omitempty"`
	Image   string    `bun:"image" json:"image,omitempty"`
	Blocked bool      `bun:"is_blocked" json:"isBlocked"`
}

// Room is a hotel room row.
type Room struct {
	bun.BaseModel `bun:"table:rooms,alias:rm"`

	ID       uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	HotelID  uuid.UUID `bun:"hotel_id,notnull,type:uuid" json:"hotelId,omitempty"`
	Name     string    `bun:"name,notnull" json:"name,omitempty"`
	RoomType string    `bun:"room_type" json:"roomType,omitempty"`
	Price    int       `bun:"price" json:"price,omitempty"`
	Capacity int       `bun:"capacity" json:"capacity,omitempty"`
}

// VerificationRequest is an owner verification submission row.
type VerificationRequest struct {
	bun.BaseModel `bun:"table:verification_requests,alias:vrq"`

	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	OwnerID       uuid.UUID  `bun:"owner_id,notnull,type:uuid" json:"ownerId,omitempty"`
	Document      string     `bun:"document" json:"document,omitempty"`
	RequestStatus string     `bun:"request_status,notnull" json:"requestStatus,omitempty"`
	RejectReason  string     `bun:"reject_reason" json:"rejectReason,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
}
