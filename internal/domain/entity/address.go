package entity

import (
	"time"
)

// Address belongs to exactly one user and is referenced, not owned, by orders.
type Address struct {
	ID          int64
	UserID      int64
	AddressCode string // ADDR-XXXXXX, generated once
	Address     string

	CreatedAt time.Time
}

func NewAddressCode() string {
	return newCode("ADDR", 6)
}
