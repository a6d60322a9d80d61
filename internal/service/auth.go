package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"taskdeck/internal/gateway"
	"taskdeck/internal/models"
	"taskdeck/internal/store"
	"taskdeck/pkg/logger"
)

// Auth implements login and signup. This is the only place in the
// system where a password is compared or a digest handled; the digest
// never crosses the service boundary.
type Auth struct {
	store store.AuthStore
}

// NewAuth returns an Auth service over the given store.
func NewAuth(s store.AuthStore) *Auth {
	return &Auth{store: s}
}

// Login verifies credentials and returns the user with the password
// field stripped. ErrUserNotFound when the email is unknown,
// ErrInvalidPassword on a digest mismatch.
func (a *Auth) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	user.Password = ""
	return user, nil
}

// Signup hashes the plaintext password and creates the user. The
// plaintext is never stored or returned; a duplicate email surfaces as
// ErrEmailTaken.
func (a *Auth) Signup(ctx context.Context, data models.SignupInput) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error(ctx, "Password hash failed", "error", err)
		return err
	}
	data.Password = string(hash)
	if _, err := a.store.CreateUser(ctx, data); err != nil {
		if gateway.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}
