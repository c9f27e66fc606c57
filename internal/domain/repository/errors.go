package repository

import "errors"

var (
	// ErrNotFound is returned when the targeted user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when creating a user whose name is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrProtectedAccount is returned when deleting the root admin.
	ErrProtectedAccount = errors.New("cannot delete main admin")
)
