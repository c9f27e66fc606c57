package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// SessionTokenBytes is the amount of entropy in a session token.
const SessionTokenBytes = 32

// KeySession is the Redis key holding the state of one session token
func KeySession(token string) string {
	return "user:session:" + token
}

// NewSessionToken generates a secure random, URL-safe session token
func NewSessionToken() (string, error) {
	b := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
