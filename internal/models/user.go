package models

import "time"

// User is an account record. The password field holds the bcrypt
// digest and is never serialized; the auth service additionally blanks
// it before a user leaves the service boundary.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// SignupInput carries the fields persisted for a new user. Password is
// already hashed by the time this reaches the access layer.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
