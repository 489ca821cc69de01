package user

import "errors"

var (
	ErrInvalidName        = errors.New("name must contain only letters")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrSearchFailed       = errors.New("search users failed")
)
