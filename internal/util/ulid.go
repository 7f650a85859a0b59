package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string from the package's monotonic,
// cryptographically seeded default entropy source.
func NewULID() string {
	return ulid.Make().String()
}
