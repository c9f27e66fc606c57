package entity

import (
	"time"
)

// RootAdminUsername names the root identity that can never be deleted.
const RootAdminUsername = "admin"

// User is the aggregate root for the account domain
// PasswordHash holds an encoded PBKDF2 digest, never the plaintext.
//
// ID and CreatedAt are assigned by the store on creation. Version starts at 1
// and the store bumps it on every later mutation, including the delete.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	Version      int64
}

// IsRootAdmin reports whether u is the protected root account.
func (u *User) IsRootAdmin() bool {
	return u != nil && u.Username == RootAdminUsername
}
