package utils

import "github.com/google/uuid"

// GenerateUUID generates a new random UUID string. Used for public page
// tokens and other opaque identifiers.
func GenerateUUID() string {
	return uuid.New().String()
}

// IsValidUUID checks whether the given string is a valid UUID.
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
