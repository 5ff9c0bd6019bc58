package entity

import (
	"time"
)

// User is the local mirror of an identity-provider account. The provider owns
// the credential for bearer flows; Password holds an optional bcrypt mirror
// written at signup and never read on the token path.
type User struct {
	ID        int64
	UserID    string // external-facing identifier, USR-XXXXXXXX, immutable
	Email     string
	Password  string
	FullName  string
	Company   string
	GSTNumber string

	IsActive   bool
	IsVerified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUserCode generates the stable external identifier assigned once at creation.
func NewUserCode() string {
	return newCode("USR", 8)
}
