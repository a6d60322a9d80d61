package service

import "errors"

// Domain failures raised by the service layer. Controllers translate
// these into HTTP statuses; they are never swallowed.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmailTaken      = errors.New("email already exists")
	ErrTodoNotFound    = errors.New("todo not found")
	ErrTaskNotFound    = errors.New("task not found")
)
