package uuidutil

import (
	"github.com/google/uuid"
)

// New returns a time-ordered (version 7) UUID string so that primary keys
// sort roughly by creation time. It falls back to a random v4 UUID if the
// v7 generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Normalize parses s and returns its canonical lowercase form.
// It returns false when s is not a valid UUID.
func Normalize(s string) (string, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// IsValid checks if a string is a valid UUID format
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
