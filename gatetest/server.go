// Package gatetest runs an in-process fake of the hotel-booking platform
// API. It implements the full surface the gate's request client consumes —
// registration, OTP, login, Google OAuth, password reset, profile, owner
// hotel/room management, and admin moderation — against an in-memory sqlite
// store, and answers 406 for missing, invalid, or blocked credentials the
// same way the production API does.
package gatetest

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	gate "github.com/stayloop/go-gate"
)

const defaultGoogleEmail = "google.traveler@example.com"

// Server is the fake platform API.
type Server struct {
	App   *fiber.App
	Store *Store

	signingKey  []byte
	frontendURL string
	ln          net.Listener
	url         string
}

type Option func(*Server)

// WithSigningKey overrides the HS256 signing key.
func WithSigningKey(key []byte) Option {
	return func(s *Server) {
		if len(key) > 0 {
			s.signingKey = key
		}
	}
}

// WithFrontendURL overrides the base the OAuth callback redirects to.
func WithFrontendURL(url string) Option {
	return func(s *Server) {
		if url != "" {
			s.frontendURL = url
		}
	}
}

// NewServer builds the fake API. Call Start to begin serving.
func NewServer(opts ...Option) (*Server, error) {
	store, err := NewStore()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Store:       store,
		signingKey:  []byte("gatetest-signing-key"),
		frontendURL: "http://localhost:5173",
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.App = fiber.New(fiber.Config{DisableStartupMessage: true})
	s.routes()

	return s, nil
}

// Start serves on an ephemeral localhost port.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}

	s.ln = ln
	s.url = "http://" + ln.Addr().String()

	go func() {
		_ = s.App.Listener(ln)
	}()

	return nil
}

// URL returns the server root, empty before Start.
func (s *Server) URL() string {
	return s.url
}

// BaseURL returns the API base the request client should be pointed at.
func (s *Server) BaseURL() string {
	return s.url + "/api"
}

// Shutdown stops the listener and closes the store.
func (s *Server) Shutdown() error {
	if err := s.App.Shutdown(); err != nil {
		return err
	}
	return s.Store.Close()
}

func (s *Server) routes() {
	api := s.App.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/users", s.handleRegister)
	auth.Post("/verify-otp", s.handleVerifyOTP)
	auth.Post("/resend-otp", s.handleResendOTP)
	auth.Post("/login", s.handleLogin)
	auth.Get("/google", s.handleGoogleAuth)
	auth.Post("/forgot-password", s.handleForgotPassword)
	auth.Post("/reset-password", s.handleResetPassword)
	auth.Post("/logout", s.requireAuth, s.handleLogout)

	api.Get("/profile", s.requireAuth, s.handleProfile)
	api.Put("/profile", s.requireAuth, s.handleUpdateProfile)
	api.Post("/change-password", s.requireAuth, s.handleChangePassword)

	owner := api.Group("/owner", s.requireAuth, s.requireRole("owner"))
	owner.Post("/owner-notifications", s.handleSubmitVerification)
	owner.Get("/hotels", s.requireVerified, s.handleListHotels)
	owner.Post("/hotels", s.requireVerified, s.handleCreateHotel)
	owner.Get("/hotels/:id", s.requireVerified, s.handleGetHotel)
	owner.Put("/hotels/:id", s.requireVerified, s.handleUpdateHotel)
	owner.Patch("/hotels/:id/block", s.requireVerified, s.handleToggleHotelBlock)
	owner.Post("/rooms", s.requireVerified, s.handleCreateRoom)
	owner.Get("/rooms/:hotelId", s.requireVerified, s.handleListRooms)

	admin := api.Group("/admin", s.requireAuth, s.requireRole("admin"))
	admin.Get("/users/:role", s.handleListUsers)
	admin.Put("/user", s.handleToggleUserBlock)
	admin.Get("/notification", s.handleListVerificationRequests)
	admin.Put("/notification/:id", s.handleResolveVerificationRequest)
}

// --- middleware ---

// requireAuth is the authority the client-side gate defers to: missing,
// unparseable, unknown, or blocked credentials all answer 406, which tells
// the request client to clear its store.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	raw := c.Cookies(gate.StorageKey)
	if raw == "" {
		header := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			raw = parts[1]
		}
	}

	if raw == "" {
		return message(c, http.StatusNotAcceptable, "missing credential")
	}

	claims, err := verifyCredential(s.signingKey, raw)
	if err != nil {
		return message(c, http.StatusNotAcceptable, "invalid credential")
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return message(c, http.StatusNotAcceptable, "invalid credential")
	}

	user, err := s.Store.UserByID(c.Context(), userID)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	if user == nil || user.Blocked {
		return message(c, http.StatusNotAcceptable, "credential no longer valid")
	}

	c.Locals("authUser", user)
	return c.Next()
}

func (s *Server) requireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := authUser(c)
		if user == nil || user.Role != role {
			return message(c, http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

func (s *Server) requireVerified(c *fiber.Ctx) error {
	user := authUser(c)
	if user == nil || !user.Verified {
		return message(c, http.StatusForbidden, "owner is not verified")
	}
	return c.Next()
}

func authUser(c *fiber.Ctx) *User {
	user, _ := c.Locals("authUser").(*User)
	return user
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func fieldError(c *fiber.Ctx, field, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"errors": []fiber.Map{{"field": field, "message": msg}},
	})
}

func randomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// --- auth handlers ---

type registerBody struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	body := registerBody{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}

	if body.Email == "" {
		return fieldError(c, "email", "email is required")
	}
	if body.Password == "" {
		return fieldError(c, "password", "password is required")
	}
	if body.Role != "user" && body.Role != "owner" && body.Role != "admin" {
		return fieldError(c, "role", "unknown role")
	}

	existing, err := s.Store.UserByEmail(c.Context(), body.Email)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	if existing != nil {
		return fieldError(c, "email", "email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.MinCost)
	if err != nil {
		return message(c, http.StatusInternalServerError, "failed to hash password")
	}

	user := &User{
		Role:         body.Role,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Email:        body.Email,
		Phone:        body.Phone,
		PasswordHash: string(hash),
		OTP:          randomOTP(),
	}
	if id, err := hashid.NewUUID(body.Email); err == nil {
		user.ID = id
	} else {
		user.ID = uuid.New()
	}

	if _, err := s.Store.Users().Create(c.Context(), user); err != nil {
		return message(c, http.StatusConflict, "could not create user")
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "otp sent"})
}

type otpBody struct {
	OTP   string `json:"otp"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Server) handleVerifyOTP(c *fiber.Ctx) error {
	body := otpBody{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := s.Store.UserByEmail(c.Context(), body.Email)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	if user == nil || user.OTP == "" || user.OTP != body.OTP {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "invalid otp",
		})
	}

	user.EmailVerified = true
	user.OTP = ""
	if err := s.Store.SaveUser(c.Context(), user); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}

	return c.JSON(fiber.Map{"success": true, "message": "account verified"})
}

func (s *Server) handleResendOTP(c *fiber.Ctx) error {
	body := struct {
		Email string `json:"email"`
	}{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := s.Store.UserByEmail(c.Context(), body.Email)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	if user != nil && !user.EmailVerified {
		user.OTP = randomOTP()
		if err := s.Store.SaveUser(c.Context(), user); err != nil {
			return message(c, http.StatusInternalServerError, "storage failure")
		}
	}

	// Same answer whether the account exists or not.
	return c.JSON(fiber.Map{"message": "otp sent"})
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	body := loginBody{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := s.Store.UserByEmail(c.Context(), body.Email)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	if user == nil || user.Role != body.Role {
		return message(c, http.StatusUnauthorized, "invalid credentials")
	}
	if user.Blocked {
		return message(c, http.StatusUnauthorized, "account is blocked")
	}
	if !user.EmailVerified {
		return message(c, http.StatusUnauthorized, "verify your email first")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		return message(c, http.StatusUnauthorized, "invalid credentials")
	}

	token, err := MintCredential(s.signingKey, user, 24*time.Hour)
	if err != nil {
		return message(c, http.StatusInternalServerError, "failed to mint credential")
	}

	c.Cookie(&fiber.Cookie{
		Name:     gate.StorageKey,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"token": token})
}

func (s *Server) handleGoogleAuth(c *fiber.Ctx) error {
	email := c.Query("email", defaultGoogleEmail)

	ctx := context.Background()
	user, err := s.Store.UserByEmail(ctx, email)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}

	if user == nil {
		user = &User{
			Role:          "user",
			Email:         email,
			FirstName:     "Google",
			LastName:      "Traveler",
			EmailVerified: true,
		}
		if id, err := hashid.NewUUID(email); err == nil {
			user.ID = id
		} else {
			user.ID = uuid.New()
		}
		if _, err := s.Store.Users().Create(ctx, user); err != nil {
			return message(c, http.StatusInternalServerError, "could not create user")
		}
	}

	token, err := MintCredential(s.signingKey, user, 24*time.Hour)
	if err != nil {
		return message(c, http.StatusInternalServerError, "failed to mint credential")
	}

	target := fmt.Sprintf("%s%s?%s=%s", s.frontendURL, gate.PathAuthSuccess, gate.StorageKey, token)
	return c.Redirect(target, http.StatusFound)
}

func (s *Server) handleForgotPassword(c *fiber.Ctx) error {
	body := struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := s.Store.UserByEmail(c.Context(), body.Email)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	if user != nil && user.Role == body.Role {
		user.ResetToken = uuid.NewString()
		if err := s.Store.SaveUser(c.Context(), user); err != nil {
			return message(c, http.StatusInternalServerError, "storage failure")
		}
	}

	return c.JSON(fiber.Map{"message": "reset link sent if the account exists"})
}

func (s *Server) handleResetPassword(c *fiber.Ctx) error {
	body := struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}
	if body.Token == "" || body.Password == "" {
		return fieldError(c, "token", "token and password are required")
	}

	user := &User{}
	err := s.Store.db.NewSelect().Model(user).Where("reset_token = ?", body.Token).Scan(c.Context())
	if err != nil {
		return message(c, http.StatusBadRequest, "invalid or expired token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.MinCost)
	if err != nil {
		return message(c, http.StatusInternalServerError, "failed to hash password")
	}

	user.PasswordHash = string(hash)
	user.ResetToken = ""
	if err := s.Store.SaveUser(c.Context(), user); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}

	return c.JSON(fiber.Map{"message": "password changed"})
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     gate.StorageKey,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"message": "logged out"})
}

// --- profile handlers ---

func (s *Server) handleProfile(c *fiber.Ctx) error {
	return c.JSON(authUser(c))
}

func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	body := struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
		Image     string `json:"image"`
	}{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}

	user := authUser(c)
	if body.FirstName != "" {
		user.FirstName = body.FirstName
	}
	if body.LastName != "" {
		user.LastName = body.LastName
	}
	if body.Phone != "" {
		user.Phone = body.Phone
	}
	if body.Image != "" {
		user.Image = body.Image
	}

	if err := s.Store.SaveUser(c.Context(), user); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(user)
}

func (s *Server) handleChangePassword(c *fiber.Ctx) error {
	body := struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}

	user := authUser(c)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.OldPassword)); err != nil {
		return fieldError(c, "oldPassword", "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.MinCost)
	if err != nil {
		return message(c, http.StatusInternalServerError, "failed to hash password")
	}

	user.PasswordHash = string(hash)
	if err := s.Store.SaveUser(c.Context(), user); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}

// --- owner handlers ---

func (s *Server) handleListHotels(c *fiber.Ctx) error {
	hotels, err := s.Store.HotelsByOwner(c.Context(), authUser(c).ID)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(hotels)
}

type hotelBody struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	Image   string `json:"image"`
}

func (s *Server) handleCreateHotel(c *fiber.Ctx) error {
	body := hotelBody{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}
	if body.Name == "" {
		return fieldError(c, "name", "name is required")
	}

	hotel := &Hotel{
		OwnerID: authUser(c).ID,
		Name:    body.Name,
		City:    body.City,
		Address: body.Address,
		Image:   body.Image,
	}
	if err := s.Store.CreateHotel(c.Context(), hotel); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.Status(http.StatusCreated).JSON(hotel)
}

// ownedHotel loads the :id hotel and checks it belongs to the caller.
func (s *Server) ownedHotel(c *fiber.Ctx) (*Hotel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, message(c, http.StatusBadRequest, "invalid hotel id")
	}

	hotel, err := s.Store.HotelByID(c.Context(), id)
	if err != nil {
		return nil, message(c, http.StatusInternalServerError, "storage failure")
	}
	if hotel == nil || hotel.OwnerID != authUser(c).ID {
		return nil, message(c, http.StatusNotFound, "hotel not found")
	}
	return hotel, nil
}

func (s *Server) handleGetHotel(c *fiber.Ctx) error {
	hotel, err := s.ownedHotel(c)
	if err != nil {
		return err
	}
	return c.JSON(hotel)
}

func (s *Server) handleUpdateHotel(c *fiber.Ctx) error {
	hotel, err := s.ownedHotel(c)
	if err != nil {
		return err
	}

	body := hotelBody{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}

	if body.Name != "" {
		hotel.Name = body.Name
	}
	if body.City != "" {
		hotel.City = body.City
	}
	if body.Address != "" {
		hotel.Address = body.Address
	}
	if body.Image != "" {
		hotel.Image = body.Image
	}

	if err := s.Store.SaveHotel(c.Context(), hotel); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(hotel)
}

func (s *Server) handleToggleHotelBlock(c *fiber.Ctx) error {
	hotel, err := s.ownedHotel(c)
	if err != nil {
		return err
	}

	hotel.Blocked = !hotel.Blocked
	if err := s.Store.SaveHotel(c.Context(), hotel); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(hotel)
}

func (s *Server) handleCreateRoom(c *fiber.Ctx) error {
	body := struct {
		HotelID  uuid.UUID `json:"hotelId"`
		Name     string    `json:"name"`
		RoomType string    `json:"roomType"`
		Price    int       `json:"price"`
		Capacity int       `json:"capacity"`
	}{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}

	hotel, err := s.Store.HotelByID(c.Context(), body.HotelID)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	if hotel == nil || hotel.OwnerID != authUser(c).ID {
		return fieldError(c, "hotelId", "hotel not found")
	}

	room := &Room{
		HotelID:  body.HotelID,
		Name:     body.Name,
		RoomType: body.RoomType,
		Price:    body.Price,
		Capacity: body.Capacity,
	}
	if err := s.Store.CreateRoom(c.Context(), room); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.Status(http.StatusCreated).JSON(room)
}

func (s *Server) handleListRooms(c *fiber.Ctx) error {
	hotelID, err := uuid.Parse(c.Params("hotelId"))
	if err != nil {
		return message(c, http.StatusBadRequest, "invalid hotel id")
	}

	rooms, err := s.Store.RoomsByHotel(c.Context(), hotelID)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(rooms)
}

func (s *Server) handleSubmitVerification(c *fiber.Ctx) error {
	body := struct {
		Document string `json:"document"`
	}{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}
	if body.Document == "" {
		return fieldError(c, "document", "document is required")
	}

	req := &VerificationRequest{
		OwnerID:  authUser(c).ID,
		Document: body.Document,
	}
	if err := s.Store.CreateVerificationRequest(c.Context(), req); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.Status(http.StatusCreated).JSON(req)
}

// --- admin handlers ---

func (s *Server) handleListUsers(c *fiber.Ctx) error {
	users, err := s.Store.UsersByRole(c.Context(), c.Params("role"))
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(users)
}

func (s *Server) handleToggleUserBlock(c *fiber.Ctx) error {
	body := struct {
		UserID string `json:"userId"`
	}{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}

	id, err := uuid.Parse(body.UserID)
	if err != nil {
		return fieldError(c, "userId", "invalid user id")
	}

	user, err := s.Store.UserByID(c.Context(), id)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	if user == nil {
		return message(c, http.StatusNotFound, "user not found")
	}

	user.Blocked = !user.Blocked
	if err := s.Store.SaveUser(c.Context(), user); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(user)
}

func (s *Server) handleListVerificationRequests(c *fiber.Ctx) error {
	reqs, err := s.Store.PendingVerificationRequests(c.Context())
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	return c.JSON(reqs)
}

func (s *Server) handleResolveVerificationRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return message(c, http.StatusBadRequest, "invalid request id")
	}

	body := struct {
		RequestStatus string `json:"requestStatus"`
		RejectReason  string `json:"rejectReason"`
	}{}
	if err := c.BodyParser(&body); err != nil {
		return message(c, http.StatusBadRequest, "invalid payload")
	}
	if body.RequestStatus != "approved" && body.RequestStatus != "rejected" {
		return fieldError(c, "requestStatus", "must be approved or rejected")
	}

	req, err := s.Store.VerificationRequestByID(c.Context(), id)
	if err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}
	if req == nil {
		return message(c, http.StatusNotFound, "request not found")
	}

	req.RequestStatus = body.RequestStatus
	req.RejectReason = body.RejectReason
	if err := s.Store.SaveVerificationRequest(c.Context(), req); err != nil {
		return message(c, http.StatusInternalServerError, "storage failure")
	}

	// Approval flips the server-side flag; the owner's stored credential
	// stays stale until they log in again.
	if body.RequestStatus == "approved" {
		owner, err := s.Store.UserByID(c.Context(), req.OwnerID)
		if err != nil {
			return message(c, http.StatusInternalServerError, "storage failure")
		}
		if owner != nil {
			owner.Verified = true
			if err := s.Store.SaveUser(c.Context(), owner); err != nil {
				return message(c, http.StatusInternalServerError, "storage failure")
			}
		}
	}

	return c.JSON(req)
}

// --- test helpers ---

// SeedUser describes an account to create directly, skipping the OTP flow.
type SeedUser struct {
	Role          string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	Verified      bool
	Blocked       bool
	EmailVerified bool
}

// Seed creates the account and returns the stored row.
func (s *Server) Seed(ctx context.Context, seed SeedUser) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Role:          seed.Role,
		Email:         seed.Email,
		FirstName:     seed.FirstName,
		LastName:      seed.LastName,
		PasswordHash:  string(hash),
		Verified:      seed.Verified,
		Blocked:       seed.Blocked,
		EmailVerified: seed.EmailVerified,
	}
	if id, err := hashid.NewUUID(seed.Email); err == nil {
		user.ID = id
	} else {
		user.ID = uuid.New()
	}

	if _, err := s.Store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// OTP returns the pending one-time code for an email, empty when none.
func (s *Server) OTP(ctx context.Context, email string) string {
	user, err := s.Store.UserByEmail(ctx, email)
	if err != nil || user == nil {
		return ""
	}
	return user.OTP
}

// ResetToken returns the pending password-reset token for an email.
func (s *Server) ResetToken(ctx context.Context, email string) string {
	user, err := s.Store.UserByEmail(ctx, email)
	if err != nil || user == nil {
		return ""
	}
	return user.ResetToken
}

// SigningKey exposes the HS256 key so tests can mint credentials directly.
func (s *Server) SigningKey() []byte {
	return s.signingKey
}
