package gate

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to validate phone numbers that are
// not in international format.
var DefaultPhoneRegion = "IN"

// Profile is the authenticated account as served by GET /profile.
type Profile struct {
	ID        uuid.UUID `json:"id,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role,omitempty"`
	Verified  bool      `json:"isVerified"`
	Blocked   bool      `json:"isBlocked"`
	Image     string    `json:"image,omitempty"`
}

// Hotel is an owner-managed property.
type Hotel struct {
	ID      uuid.UUID `json:"id,omitempty"`
	OwnerID uuid.UUID `json:"ownerId,omitempty"`
	Name    string    `json:"name,omitempty"`
	City    string    `json:"city,omitempty"`
	Address string    `json:"address,omitempty"`
	Image   string    `json:"image,omitempty"`
	Blocked bool      `json:"isBlocked"`
}

// Room belongs to a hotel.
type Room struct {
	ID       uuid.UUID `json:"id,omitempty"`
	HotelID  uuid.UUID `json:"hotelId,omitempty"`
	Name     string    `json:"name,omitempty"`
	RoomType string    `json:"roomType,omitempty"`
	Price    int       `json:"price,omitempty"`
	Capacity int       `json:"capacity,omitempty"`
}

// Verification request moderation states.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// VerificationRequest is an owner's submission awaiting admin moderation.
type VerificationRequest struct {
	ID            uuid.UUID  `json:"id,omitempty"`
	OwnerID       uuid.UUID  `json:"ownerId,omitempty"`
	Document      string     `json:"document,omitempty"`
	RequestStatus string     `json:"requestStatus,omitempty"`
	RejectReason  string     `json:"rejectReason,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// AccountUser is an account row as listed by the admin surface.
type AccountUser struct {
	ID        uuid.UUID `json:"id,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role,omitempty"`
	Blocked   bool      `json:"isBlocked"`
}

// RegisterPayload is the pre-OTP registration form.
type RegisterPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
}

// Validate will run validation rules
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Phone, validation.Required, validation.By(validPhone)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.Role, validation.Required, validation.In(RoleUser, RoleOwner, RoleAdmin)),
	)
}

func validPhone(value any) error {
	s, _ := value.(string)
	num, err := phonenumbers.Parse(s, DefaultPhoneRegion)
	if err != nil {
		return goerrors.New("must be a valid phone number", goerrors.CategoryValidation)
	}
	if !phonenumbers.IsValidNumber(num) {
		return goerrors.New("must be a valid phone number", goerrors.CategoryValidation)
	}
	return nil
}

// LoginPayload is the credential form for a role-parameterized login page.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Role, validation.Required, validation.In(RoleUser, RoleOwner, RoleAdmin)),
	)
}

// OTPPayload verifies the emailed one-time code.
type OTPPayload struct {
	OTP   string `json:"otp"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Validate will run validation rules
func (r OTPPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OTP, validation.Required, is.Digit, validation.Length(6, 6)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Role, validation.Required, validation.In(RoleUser, RoleOwner, RoleAdmin)),
	)
}

// ForgotPasswordPayload starts a password reset.
type ForgotPasswordPayload struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Validate will run validation rules
func (r ForgotPasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Role, validation.Required, validation.In(RoleUser, RoleOwner, RoleAdmin)),
	)
}

// ResetPasswordPayload finalizes a password reset with the emailed token.
type ResetPasswordPayload struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r ResetPasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

// ChangePasswordPayload rotates the password of the authenticated account.
type ChangePasswordPayload struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Validate will run validation rules
func (r ChangePasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 72)),
	)
}

// UpdateProfilePayload updates profile fields or the profile image
// (pre-converted to a data URL by the view layer).
type UpdateProfilePayload struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Image     string `json:"image,omitempty"`
}

// Validate will run validation rules
func (r UpdateProfilePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phone, validation.By(optionalPhone)),
	)
}

func requiredUUID(value any) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return goerrors.New("cannot be blank", goerrors.CategoryValidation)
	}
	return nil
}

func optionalPhone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	return validPhone(value)
}

// HotelPayload creates or updates a hotel.
type HotelPayload struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	Image   string `json:"image,omitempty"`
}

// Validate will run validation rules
func (r HotelPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.City, validation.Required),
		validation.Field(&r.Address, validation.Required),
	)
}

// RoomPayload creates a room under a hotel.
type RoomPayload struct {
	HotelID  uuid.UUID `json:"hotelId"`
	Name     string    `json:"name"`
	RoomType string    `json:"roomType"`
	Price    int       `json:"price"`
	Capacity int       `json:"capacity"`
}

// Validate will run validation rules
func (r RoomPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.HotelID, validation.By(requiredUUID)),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Price, validation.Required, validation.Min(1)),
		validation.Field(&r.Capacity, validation.Required, validation.Min(1)),
	)
}

// VerificationSubmission is the owner's verification document upload.
type VerificationSubmission struct {
	Document string `json:"document"`
}

// Validate will run validation rules
func (r VerificationSubmission) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Document, validation.Required),
	)
}

// ModerationDecision resolves a verification request.
type ModerationDecision struct {
	RequestStatus string `json:"requestStatus"`
	RejectReason  string `json:"rejectReason,omitempty"`
}

// Validate will run validation rules
func (r ModerationDecision) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RequestStatus, validation.Required,
			validation.In(RequestStatusApproved, RequestStatusRejected)),
	)
}
