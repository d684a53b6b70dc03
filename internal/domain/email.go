package domain

import (
	"net/mail"
	"strings"
)

// Email is a validated, lower-cased email address. Two Emails built from
// inputs differing only in case compare equal.
type Email string

func NewEmail(raw string) (Email, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", Validationf("invalid email address: %q", raw)
	}
	at := strings.LastIndex(raw, "@")
	if !strings.Contains(raw[at+1:], ".") {
		return "", Validationf("invalid email address: %q", raw)
	}
	return Email(strings.ToLower(raw)), nil
}

func (e Email) String() string { return string(e) }
