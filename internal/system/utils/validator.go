package utils

import (
	"fmt"
	"net/mail"

	"github.com/complyark/dpdpa-portal/internal/system/constants"
)

// ValidateRequired validates a field is not empty
func ValidateRequired(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateMaxLength validates a field does not exceed the given length
func ValidateMaxLength(fieldName, value string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%s too long (max %d chars)", fieldName, max)
	}
	return nil
}

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}

// ValidatePagination validates limit and offset
func ValidatePagination(limit, offset int) error {
	if limit < 1 || limit > constants.MaxPageSize {
		return fmt.Errorf("limit must be between 1 and %d", constants.MaxPageSize)
	}
	if offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}
	return nil
}

// ValidatePageToken validates a public request page token
func ValidatePageToken(token string) error {
	if err := ValidateRequired("pageToken", token); err != nil {
		return err
	}
	if !IsValidUUID(token) {
		return fmt.Errorf("invalid page token format")
	}
	return nil
}
