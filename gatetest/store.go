package gatetest

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const sqliteCreateUsers = `CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    role TEXT NOT NULL,
    first_name TEXT,
    last_name TEXT,
    email TEXT NOT NULL UNIQUE,
    phone TEXT,
    password_hash TEXT,
    is_verified BOOLEAN NOT NULL DEFAULT FALSE,
    is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
    is_email_verified BOOLEAN NOT NULL DEFAULT FALSE,
    otp TEXT,
    reset_token TEXT,
    image TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP
);`

const sqliteCreateHotels = `CREATE TABLE IF NOT EXISTS hotels (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    city TEXT,
    address TEXT,
    image TEXT,
    is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
    FOREIGN KEY (owner_id) REFERENCES users (id) ON DELETE CASCADE
);`

const sqliteCreateRooms = `CREATE TABLE IF NOT EXISTS rooms (
    id TEXT PRIMARY KEY,
    hotel_id TEXT NOT NULL,
    name TEXT NOT NULL,
    room_type TEXT,
    price INTEGER,
    capacity INTEGER,
    FOREIGN KEY (hotel_id) REFERENCES hotels (id) ON DELETE CASCADE
);`

const sqliteCreateVerificationRequests = `CREATE TABLE IF NOT EXISTS verification_requests (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    document TEXT,
    request_status TEXT NOT NULL,
    reject_reason TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (owner_id) REFERENCES users (id) ON DELETE CASCADE
);`

// Store is the sqlite-backed persistence behind the fake platform API.
type Store struct {
	db    *bun.DB
	sqlDB *sql.DB
	users repository.Repository[*User]
}

var storeSeq atomic.Uint64

// NewStore opens an in-memory sqlite database and creates the schema. Each
// store gets its own named database so parallel servers stay isolated.
func NewStore() (*Store, error) {
	dsn := fmt.Sprintf("file:gatetest-%d?mode=memory&cache=shared", storeSeq.Add(1))
	sqlDB, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open sqlite")
	}
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())

	ctx := context.Background()
	for _, ddl := range []string{
		"PRAGMA foreign_keys = ON;",
		sqliteCreateUsers,
		sqliteCreateHotels,
		sqliteCreateRooms,
		sqliteCreateVerificationRequests,
	} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			_ = db.Close()
			_ = sqlDB.Close()
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create schema")
		}
	}

	users := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &Store{db: db, sqlDB: sqlDB, users: users}, nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}
	return s.sqlDB.Close()
}

// Users exposes the account repository.
func (s *Store) Users() repository.Repository[*User] {
	return s.users
}

// UserByEmail finds an account, nil when absent.
func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.users.GetByIdentifier(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// UserByID finds an account by primary key, nil when absent.
func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().Model(user).Where("usr.id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// SaveUser updates an existing account row.
func (s *Store) SaveUser(ctx context.Context, user *User) error {
	_, err := s.db.NewUpdate().Model(user).WherePK().Exec(ctx)
	return err
}

// UsersByRole lists accounts of one role.
func (s *Store) UsersByRole(ctx context.Context, role string) ([]User, error) {
	users := []User{}
	err := s.db.NewSelect().Model(&users).Where("role = ?", role).Order("email ASC").Scan(ctx)
	return users, err
}

// CreateHotel inserts a property.
func (s *Store) CreateHotel(ctx context.Context, hotel *Hotel) error {
	if hotel.ID == uuid.Nil {
		hotel.ID = uuid.New()
	}
	_, err := s.db.NewInsert().Model(hotel).Exec(ctx)
	return err
}

// HotelByID fetches one property, nil when absent.
func (s *Store) HotelByID(ctx context.Context, id uuid.UUID) (*Hotel, error) {
	hotel := &Hotel{}
	err := s.db.NewSelect().Model(hotel).Where("htl.id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return hotel, nil
}

// SaveHotel updates a property row.
func (s *Store) SaveHotel(ctx context.Context, hotel *Hotel) error {
	_, err := s.db.NewUpdate().Model(hotel).WherePK().Exec(ctx)
	return err
}

// HotelsByOwner lists an owner's properties.
func (s *Store) HotelsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Hotel, error) {
	hotels := []Hotel{}
	err := s.db.NewSelect().Model(&hotels).Where("owner_id = ?", ownerID).Order("name ASC").Scan(ctx)
	return hotels, err
}

// CreateRoom inserts a room.
func (s *Store) CreateRoom(ctx context.Context, room *Room) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	_, err := s.db.NewInsert().Model(room).Exec(ctx)
	return err
}

// RoomsByHotel lists the rooms of one hotel.
func (s *Store) RoomsByHotel(ctx context.Context, hotelID uuid.UUID) ([]Room, error) {
	rooms := []Room{}
	err := s.db.NewSelect().Model(&rooms).Where("hotel_id = ?", hotelID).Order("name ASC").Scan(ctx)
	return rooms, err
}

// CreateVerificationRequest inserts a pending submission.
func (s *Store) CreateVerificationRequest(ctx context.Context, req *VerificationRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.RequestStatus == "" {
		req.RequestStatus = "pending"
	}
	_, err := s.db.NewInsert().Model(req).Exec(ctx)
	return err
}

// VerificationRequestByID fetches one submission, nil when absent.
func (s *Store) VerificationRequestByID(ctx context.Context, id uuid.UUID) (*VerificationRequest, error) {
	req := &VerificationRequest{}
	err := s.db.NewSelect().Model(req).Where("vrq.id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

// SaveVerificationRequest updates a submission row.
func (s *Store) SaveVerificationRequest(ctx context.Context, req *VerificationRequest) error {
	_, err := s.db.NewUpdate().Model(req).WherePK().Exec(ctx)
	return err
}

// PendingVerificationRequests lists submissions awaiting moderation.
func (s *Store) PendingVerificationRequests(ctx context.Context) ([]VerificationRequest, error) {
	reqs := []VerificationRequest{}
	err := s.db.NewSelect().Model(&reqs).Where("request_status = ?", "pending").Order("created_at ASC").Scan(ctx)
	return reqs, err
}
