package store

import (
	"context"

	"taskdeck/internal/gateway"
	"taskdeck/internal/models"
	"taskdeck/pkg/logger"
)

const userTable = "users"

var userColumns = []string{"id", "username", "email", "password", "created_at"}

// AuthStore is the capability contract for user records. No password
// checking happens here; this is pure data shaping over the gateway.
type AuthStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, data models.SignupInput) (*models.User, error)
}

type authStore struct {
	gw gateway.Store
}

// NewAuthStore returns an AuthStore backed by the given gateway.
func NewAuthStore(gw gateway.Store) AuthStore {
	return &authStore{gw: gw}
}

// FindUserByEmail returns the user with the given email, or nil when absent.
func (s *authStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := s.gw.Select(ctx, userTable, userColumns, gateway.Filters{"email": email})
	if err != nil {
		logger.Error(ctx, "Store find user failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	var u models.User
	if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		logger.Error(ctx, "Store scan user failed", "error", err)
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user row. A duplicate email surfaces as the
// gateway's unique-violation error, unchanged.
func (s *authStore) CreateUser(ctx context.Context, data models.SignupInput) (*models.User, error) {
	row := s.gw.Insert(ctx, userTable, gateway.Values{
		"username": data.Username,
		"email":    data.Email,
		"password": data.Password,
	}, userColumns)
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		logger.Error(ctx, "Store create user failed", "error", err)
		return nil, err
	}
	return &u, nil
}
