package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTaskNotFound       = errors.New("task not found")
	ErrEmptyField         = errors.New("required field is empty")
	ErrFieldTooLong       = errors.New("field exceeds maximum length")
)
