package user

import "errors"

var (
	ErrInvalidUserID    = errors.New("invalid user id")
	ErrInvalidUserInput = errors.New("invalid user input")
	ErrInvalidUpdate    = errors.New("no fields to update")
	ErrUserNotFound     = errors.New("user not found")
	ErrCreateFailed     = errors.New("failed to create user")
	ErrGetUserByID      = errors.New("failed to get user by id")
	ErrListUsers        = errors.New("failed to list users")
	ErrUpdateUser       = errors.New("failed to update user")
	ErrGetUserHistory   = errors.New("failed to get user history")
)
