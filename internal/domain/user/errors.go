package user

import "errors"

var (
	ErrInvalidID    = errors.New("invalid user id")
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidEmail = errors.New("invalid email")
	ErrUserNotFound = errors.New("user not found")
)
