package application

import (
	"errors"
	"strings"

	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("admin privileges required")
	ErrValidationFailed   = errors.New("validation failed")

	// Store outcomes surfaced unchanged to callers.
	ErrDuplicateUsername = repository.ErrDuplicateUsername
	ErrNotFound          = repository.ErrNotFound
	ErrProtectedAccount  = repository.ErrProtectedAccount
)

// ValidationError lists every password-policy violation found.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Violations, " ")
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
