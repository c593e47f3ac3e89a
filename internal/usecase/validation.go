package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const maxNameLength = 200

func ValidateRecordInput(input RecordInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if utf8.RuneCountInString(input.Name) > maxNameLength {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	return errors
}

func ValidateListEntryInput(input ListEntryInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.RecordID) == "" {
		errors = append(errors, ValidationError{"record_id", "is required"})
	}

	return errors
}

func ValidateNoteInput(input NoteInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.RecordID) == "" {
		errors = append(errors, ValidationError{"record_id", "is required"})
	}
	if strings.TrimSpace(input.Content) == "" {
		errors = append(errors, ValidationError{"content", "is required"})
	}
	if strings.TrimSpace(input.CreatedAt) == "" {
		errors = append(errors, ValidationError{"created_at", "is required"})
	} else if !isValidTimestamp(input.CreatedAt) {
		errors = append(errors, ValidationError{"created_at", "must be a valid ISO8601 datetime"})
	}

	return errors
}

func isValidTimestamp(value string) bool {
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return true
	}
	return false
}

func validationFailure(op string, errs []ValidationError) *WriteError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return &WriteError{
		Kind:    KindValidation,
		Op:      op,
		Message: "validation failed: " + strings.Join(parts, ", "),
		Err:     errs[0],
	}
}

// optional devolve [] para vazio. O Attio espera array explícito, nunca campo ausente.
func optional(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}
	}
	return []string{value}
}
