package service

import (
	"time"

	"taskboard/internal/domain"
)

// PasswordHasher hashes plaintext passwords and verifies them against stored
// hashes. The hash format is opaque to the services.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer mints an opaque bearer token for an authenticated user.
type TokenIssuer interface {
	Issue(userID domain.UserID) (string, error)
}

// Clock supplies the current time. Injected so tests can pin timestamps.
type Clock func() time.Time
