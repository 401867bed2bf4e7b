// Package uuid issues the ids used for budget entries, savings goals,
// investments, activity rows and request ids.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7. UUIDv7 embeds a millisecond timestamp in its
// leading 48 bits, so ids handed out by the progression engine sort by
// creation time.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to a random UUIDv4 if the entropy source fails
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	_, err := googleuuid.Parse(s)
	return err == nil
}
