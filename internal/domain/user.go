package domain

import (
	"strings"
	"time"
)

// User is an account holder. Projects and tasks reference it by UserID.
type User struct {
	id              UserID
	name            string
	email           Email
	password        string // opaque hash, never plaintext
	rememberToken   string
	emailVerifiedAt *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewUser builds an unsaved user: no id yet, unverified, no remember token.
// The password must already be hashed by the caller.
func NewUser(name string, email Email, hashedPassword string, now time.Time) (*User, error) {
	if err := validateUserName(name); err != nil {
		return nil, err
	}
	return &User{
		name:      name,
		email:     email,
		password:  hashedPassword,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// RestoreUser rebuilds a persisted user from storage fields.
func RestoreUser(id UserID, name string, email Email, hashedPassword, rememberToken string, emailVerifiedAt *time.Time, createdAt, updatedAt time.Time) (*User, error) {
	if err := validateUserName(name); err != nil {
		return nil, err
	}
	return &User{
		id:              id,
		name:            name,
		email:           email,
		password:        hashedPassword,
		rememberToken:   rememberToken,
		emailVerifiedAt: emailVerifiedAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func validateUserName(name string) error {
	if strings.TrimSpace(name) == "" {
		return Validationf("user name cannot be blank")
	}
	if len(name) < 2 {
		return Validationf("user name must be at least 2 characters long")
	}
	if len(name) > 255 {
		return Validationf("user name cannot exceed 255 characters")
	}
	return nil
}

func (u *User) ID() UserID                  { return u.id }
func (u *User) Name() string                { return u.name }
func (u *User) Email() Email                { return u.email }
func (u *User) Password() string            { return u.password }
func (u *User) RememberToken() string       { return u.rememberToken }
func (u *User) EmailVerifiedAt() *time.Time { return u.emailVerifiedAt }
func (u *User) CreatedAt() time.Time        { return u.createdAt }
func (u *User) UpdatedAt() time.Time        { return u.updatedAt }

// IsNew reports whether the user has been persisted yet.
func (u *User) IsNew() bool { return u.id == 0 }

// AssignID records the storage-issued id. It refuses to reassign.
func (u *User) AssignID(id UserID) error {
	if u.id != 0 {
		return Validationf("user id already assigned")
	}
	u.id = id
	return nil
}

func (u *User) UpdateProfile(name string, email Email, now time.Time) error {
	if err := validateUserName(name); err != nil {
		return err
	}
	u.name = name
	u.email = email
	u.updatedAt = now
	return nil
}

func (u *User) MarkEmailVerified(now time.Time) {
	verifiedAt := now
	u.emailVerifiedAt = &verifiedAt
	u.updatedAt = now
}

func (u *User) IsEmailVerified() bool { return u.emailVerifiedAt != nil }

func (u *User) ChangePassword(hashedPassword string, now time.Time) {
	u.password = hashedPassword
	u.updatedAt = now
}

func (u *User) SetRememberToken(token string, now time.Time) {
	u.rememberToken = token
	u.updatedAt = now
}
