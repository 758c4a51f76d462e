package invoice

import "github.com/google/uuid"

// IDGenerator produces opaque identifiers for invoices, items and payments.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
